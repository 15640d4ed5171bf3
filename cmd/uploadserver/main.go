package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/tendant/simple-upload/pkg/simpleupload/api"
	"github.com/tendant/simple-upload/pkg/simpleupload/config"
	"github.com/tendant/simple-upload/pkg/simpleupload/signing"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	store, err := cfg.BuildBlobStore()
	if err != nil {
		slog.Error("Failed to build blob store", "err", err)
		os.Exit(1)
	}

	signer := signing.New(signing.WithSecretKey(cfg.SecretKey))
	handlers := api.NewHandlers(store, signer)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	RoutesHealthz(r)
	r.Mount("/api/v1", handlers.Routes())

	slog.Info("Starting upload server", "port", cfg.Port, "storage", cfg.StorageURL)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}

func RoutesHealthz(r *chi.Mux) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})
}
