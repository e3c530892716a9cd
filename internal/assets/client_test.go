package assets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "127.0.0.1:8787", want: "http://127.0.0.1:8787"},
		{in: "  https://cdn.example/images?x=1#y ", want: "https://cdn.example"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		u, err := parseBaseURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseBaseURL(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseBaseURL(%q)", tt.in)
		assert.Equal(t, tt.want, u.String())
	}
}

func TestClient_FetchAndHealth(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/images/20250403/actual_2100.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("jpegbytes"))
		case "/healthz":
			_ = json.NewEncoder(w).Encode(Health{Status: "ok", Root: "/srv"})
		case "/images/broken.jpg":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	ctx := context.Background()

	n, err := client.Fetch(ctx, "/images/20250403/actual_2100.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, len("jpegbytes"), n)
	assert.Equal(t, defaultUserAgent, gotUserAgent)

	_, err = client.Fetch(ctx, "/images/20250403/forecast_2300.jpg")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = client.Fetch(ctx, "/images/broken.jpg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	_, err := c.Fetch(context.Background(), "/x")
	assert.Error(t, err)
	_, err = c.Health(context.Background())
	assert.Error(t, err)
}
