// Command stubserver runs a local stand-in for the RecallAI backend so the
// client can be tried without the real service.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/santanu2402/recallai-cli/internal/logging"
	"github.com/santanu2402/recallai-cli/internal/stubserver"
)

func main() {
	addr := os.Getenv("RECALLAI_STUB_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	logger := logging.NewDefault(os.Stderr, slog.LevelInfo)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	stubserver.New(logger).RegisterRoutes(e)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
