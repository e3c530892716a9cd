package assetserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures a Server.
type Options struct {
	Addr      string
	Root      string // directory holding YYYYMMDD/ image folders
	Prefix    string // URL prefix images are served under, "/images" by default
	Logger    *slog.Logger
	AccessLog io.Writer // fiber access log; nil disables it
}

// Server is a static image host with health and metrics endpoints.
type Server struct {
	app     *fiber.App
	addr    string
	root    string
	prefix  string
	logger  *slog.Logger
	metrics *Metrics
}

// New builds the fiber app and registers routes.
func New(opts Options) *Server {
	prefix := "/" + strings.Trim(strings.TrimSpace(opts.Prefix), "/")
	if prefix == "/" {
		prefix = "/images"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		addr:    opts.Addr,
		root:    opts.Root,
		prefix:  prefix,
		logger:  log,
		metrics: NewMetrics(reg),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "nowcast-assets",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	if opts.AccessLog != nil {
		s.app.Use(logger.New(logger.Config{Output: opts.AccessLog}))
	}
	s.app.Use(recover.New())
	s.app.Use(s.instrument)

	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	s.app.Static(prefix, opts.Root, fiber.Static{
		Browse:        false,
		CacheDuration: time.Minute,
		MaxAge:        3600,
	})
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		s.logger.Warn("asset root is not a directory", "root", s.root)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("asset host starting", "addr", s.addr, "root", s.root, "prefix", s.prefix)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("asset host shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"root":   s.root,
	})
}

func (s *Server) instrument(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	route := s.routeLabel(c.Path())
	s.metrics.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if n := c.Response().Header.ContentLength(); route == s.prefix && status == fiber.StatusOK && n > 0 {
		s.metrics.BytesServed.Add(float64(n))
	}
	return err
}

// routeLabel keeps metric cardinality bounded.
func (s *Server) routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, s.prefix+"/"):
		return s.prefix
	case path == "/healthz", path == "/metrics":
		return path
	default:
		return "other"
	}
}
