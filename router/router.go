// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/handlers"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/network"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	movementHandler := handlers.NewMovementHandler(db, cfg, network.NewPicker(cfg.LeaderSeed))
	signalHandler := handlers.NewSignalHandler(db, cfg)
	announcementHandler := handlers.NewAnnouncementHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Users
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.GetMe))
	mux.HandleFunc("PUT /users/me/bio", middleware.WithLogging(userHandler.UpdateBio))

	// Movements
	mux.HandleFunc("GET /movements", middleware.WithLogging(movementHandler.ListMovements))
	mux.HandleFunc("POST /movements", middleware.WithLogging(movementHandler.CreateMovement))
	mux.HandleFunc("GET /movements/subscriptions", middleware.WithLogging(movementHandler.ListSubscriptions))
	mux.HandleFunc("GET /movements/{id}", middleware.WithLogging(movementHandler.GetMovement))
	mux.HandleFunc("GET /movements/{id}/network", middleware.WithLogging(movementHandler.GetNetwork))

	// Membership and leaders
	mux.HandleFunc("PUT /movements/{id}/subscriber", middleware.WithLogging(movementHandler.Subscribe))
	mux.HandleFunc("DELETE /movements/{id}/subscriber", middleware.WithLogging(movementHandler.Unsubscribe))
	mux.HandleFunc("GET /movements/{id}/leaders/{leader_id}", middleware.WithLogging(movementHandler.GetLeader))
	mux.HandleFunc("POST /movements/{id}/leaders/{leader_id}", middleware.WithLogging(movementHandler.SwapLeader))

	// Signals
	mux.HandleFunc("POST /movements/{id}/signals", middleware.WithLogging(signalHandler.SendSignal))

	// Announcements (writes require X-Admin-Key)
	mux.HandleFunc("GET /movements/{id}/announcements", middleware.WithLogging(announcementHandler.ListAnnouncements))
	mux.HandleFunc("POST /movements/{id}/announcements", middleware.WithLogging(announcementHandler.CreateAnnouncement))
	mux.HandleFunc("PUT /movements/{id}/announcements/{announcement_id}", middleware.WithLogging(announcementHandler.UpdateAnnouncement))
	mux.HandleFunc("DELETE /movements/{id}/announcements/{announcement_id}", middleware.WithLogging(announcementHandler.DeleteAnnouncement))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gridt API v1"))
	})

	return mux
}
