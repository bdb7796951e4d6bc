package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"eligue-assistance/internal/config"
	"eligue-assistance/internal/models"
	"eligue-assistance/internal/repository/memory"
	"eligue-assistance/internal/router"
	"eligue-assistance/internal/utils"
	"eligue-assistance/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// in-memory state, seeded with the application catalog and one admin
	store := memory.New(cfg.Applications)
	if err := seedAdmin(store, cfg); err != nil {
		l.Fatal().Err(err).Msg("seed admin failed")
	}

	// http
	r := router.New(l, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}

// seedAdmin creates the initial admin so the fresh in-memory store is
// reachable at all; every further user is created through the API.
func seedAdmin(store *memory.Store, cfg config.Config) error {
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	return memory.NewUserRepo(store).Create(context.Background(), &models.User{
		ID:        uuid.NewString(),
		Login:     cfg.AdminLogin,
		FullName:  cfg.AdminName,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}, hash)
}
