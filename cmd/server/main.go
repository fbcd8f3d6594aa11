package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-payment/internal/config"
	"booking-payment/internal/logger"
	"booking-payment/internal/modules/booking"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Runs the payment handler as a plain HTTP server for local development.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)
	handler := booking.NewHandler(booking.NewServiceFromConfig(cfg, log), cfg.AllowOrigin, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	handler.RegisterRoutes(e)

	go func() {
		log.Info().Str("port", cfg.ServerPort).Bool("test_mode", cfg.TestMode()).Msg("starting server")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
