package assetserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/nowcast/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	day := filepath.Join(root, "20250403")
	require.NoError(t, os.MkdirAll(day, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(day, "actual_2100.jpg"), []byte("frame-2100"), 0o644))
	return New(Options{Addr: "127.0.0.1:0", Root: root, Logger: logging.Discard()})
}

func get(t *testing.T, s *Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func TestServer_ServesImages(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/images/20250403/actual_2100.jpg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "frame-2100", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/jpeg")
}

func TestServer_MissingImageIs404(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/images/20250403/forecast_2300.jpg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, true, payload["error"])
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	resp, body := get(t, s, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, s.root, payload["root"])
}

func TestServer_MetricsCountRequests(t *testing.T) {
	s := newTestServer(t)

	get(t, s, "/images/20250403/actual_2100.jpg")
	get(t, s, "/images/20250403/actual_2100.jpg")
	get(t, s, "/images/20250403/forecast_2300.jpg")

	resp, body := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `nowcast_assets_requests_total{route="/images",status="200"} 2`)
	assert.Contains(t, body, `nowcast_assets_requests_total{route="/images",status="404"} 1`)
	assert.Contains(t, body, "nowcast_assets_bytes_served_total 20")
}

func TestServer_CustomPrefix(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20250403"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "20250403", "forecast_2200.jpg"), []byte("x"), 0o644))
	s := New(Options{Root: root, Prefix: "radar/", Logger: logging.Discard()})

	resp, _ := get(t, s, "/radar/20250403/forecast_2200.jpg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "other", s.routeLabel("/images/20250403/forecast_2200.jpg"))
}
