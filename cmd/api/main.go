package main

import (
	"context"
	"net/http"

	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/georgemunganga/printa-retail/internal/config"
	"github.com/georgemunganga/printa-retail/internal/modules/auth"
	"github.com/georgemunganga/printa-retail/internal/modules/store"
	"github.com/georgemunganga/printa-retail/internal/modules/user"
	"github.com/georgemunganga/printa-retail/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer repos.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Store ───────────────────────────────────────────────
	recorder := audit.NewRecorder(cfg.AuditBuffer)
	sink := audit.Multi{recorder, audit.NewLogrusSink(log.StandardLogger())}
	// requests act as their session user; the base user is never consulted
	base := store.New(user.User{}, store.Options{
		Sink:          sink,
		InventoryRepo: repos.Inventory,
		SalesRepo:     repos.Sales,
	})
	if _, err := base.Load(ctx); err != nil {
		log.WithError(err).Fatal("load persisted state")
	}

	// ── Sessions ────────────────────────────────────────────
	authService := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	auth.NewHandler(authService).RegisterRoutes(router)
	store.NewHandler(base, authService, recorder).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	log.WithFields(log.Fields{"port": cfg.AppPort, "storage": cfg.StorageDriver}).Info("Retail API server starting")
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
