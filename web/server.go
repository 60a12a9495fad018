package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const GracefulShutdownTimeout = 10 * time.Second

// Server serves the recommendation page.
type Server struct {
	Echo *echo.Echo

	cfg *ServerConfig
	adv *Advisor
}

func NewServer(cfg *ServerConfig, adv *Advisor) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = newRenderer()

	s := &Server{Echo: e, cfg: cfg, adv: adv}
	s.Echo.Use(requestLogger())
	s.Echo.Use(middleware.Recover())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/", s.index)
	s.Echo.POST("/", s.recommend)
	s.Echo.GET("/api/recommend", s.recommendAPI)
	s.Echo.GET("/health", s.health)
}

// Start serves requests until the process is interrupted.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("Listening", "port", s.cfg.Port, "backends", s.adv.Backends())
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()
	return s.Echo.Shutdown(ctx)
}
