package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(http.NewServeMux(), 0, time.Second, time.Second, time.Second, logger)
}

func TestGracefulShutdown_RunsFuncsInReverseOrder(t *testing.T) {
	srv := newTestServer()

	var order []string
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		order = append(order, "postgres")
		return nil
	})
	srv.OnShutdown("worker", func(ctx context.Context) error {
		order = append(order, "worker")
		return nil
	})

	if err := srv.gracefulShutdown(); err != nil {
		t.Fatalf("gracefulShutdown failed: %v", err)
	}

	if len(order) != 2 || order[0] != "worker" || order[1] != "postgres" {
		t.Errorf("unexpected shutdown order: %v", order)
	}
}

func TestGracefulShutdown_ReturnsComponentError(t *testing.T) {
	srv := newTestServer()

	wantErr := errors.New("pool close failed")
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		return wantErr
	})

	if err := srv.gracefulShutdown(); !errors.Is(err, wantErr) {
		t.Errorf("gracefulShutdown error = %v, want %v", err, wantErr)
	}
}
