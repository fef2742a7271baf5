package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"poststream/app/config"
	"poststream/app/controllers"
	"poststream/app/models"
	"poststream/app/repositories"
	"poststream/app/routes"
	"poststream/app/services"

	"github.com/dgraph-io/badger/v4"
)

const shutdownTimeout = 5 * time.Second

// NewPostService wires a PostService onto db.
func NewPostService(db *badger.DB, limits models.Limits, log *slog.Logger) *services.PostService {
	repo := repositories.NewBadgerPostRepository(db, limits)
	return services.NewPostService(repo, limits, nil, log)
}

// NewHandler builds the HTTP API served by RunServer.
func NewHandler(db *badger.DB, limits models.Limits, log *slog.Logger) http.Handler {
	postController := controllers.NewPostController(NewPostService(db, limits, log), log)
	return routes.SetupRoutes(postController, log)
}

// RunServer serves the post API on listener until ctx is done, then shuts
// down gracefully.
func RunServer(ctx context.Context, cfg config.Config, listener net.Listener, log *slog.Logger) error {
	db, err := repositories.Open(cfg.BadgerFilepath)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	server := &http.Server{
		Handler:           NewHandler(db, cfg.Limits(), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", listener.Addr().String(), "at", time.Now().UTC())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("Server stopped cleanly")
	return nil
}
