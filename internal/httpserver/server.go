package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ShutdownTimeout bounds how long in-flight requests may take to finish.
const ShutdownTimeout = 5 * time.Second

// Serve serves handler on ln until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%w: %v", ErrServe, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrShutdown, err)
	}

	log.Println("server gracefully stopped")
	return nil
}

// Run listens on addr and serves handler until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrListen, addr, err)
	}
	return Serve(ctx, ln, handler)
}

// StartWithGracefulShutdown starts an HTTP server that stops on SIGINT or
// SIGTERM.
func StartWithGracefulShutdown(addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, addr, handler)
}

// Config represents common HTTP server configuration
type Config interface {
	GetListenAddress() string
	GetListenPort() int
}

// Address formats the listen address of cfg.
func Address(cfg Config) string {
	return net.JoinHostPort(cfg.GetListenAddress(), fmt.Sprint(cfg.GetListenPort()))
}

// StartFromConfig starts an HTTP server using a Config interface
func StartFromConfig(cfg Config, handler http.Handler) error {
	return StartWithGracefulShutdown(Address(cfg), handler)
}
