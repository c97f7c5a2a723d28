package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"odyssey/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Closer releases a resource during shutdown.
type Closer func(ctx context.Context) error

// Serve listens on addr until ctx is done, then drains in-flight requests
// and runs closers in order. It returns only after every closer has
// finished, so the caller may exit as soon as it returns.
func Serve(ctx context.Context, app *fiber.App, addr string, timeout time.Duration, closers ...Closer) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err == nil {
			err = errors.New("listener closed before shutdown")
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	middleware.Logger.Info("shutting down server", "timeout", timeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := <-listenErr; err != nil {
		errs = append(errs, fmt.Errorf("listen %s: %w", addr, err))
	}
	for _, closeFn := range closers {
		if err := closeFn(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
