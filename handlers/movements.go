// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/auth"
	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/db"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/store"
	"github.com/danielhkuo/gridt/view"
)

type MovementHandler struct {
	db     *sqlx.DB
	cfg    cliparse.Config
	picker network.Picker
}

func NewMovementHandler(db *sqlx.DB, cfg cliparse.Config, picker network.Picker) *MovementHandler {
	return &MovementHandler{db: db, cfg: cfg, picker: picker}
}

// inTx runs fn with a store and engine bound to one transaction.
func (h *MovementHandler) inTx(ctx context.Context, fn func(s *store.Store, e *network.Engine) error) error {
	return db.WithTx(ctx, h.db, func(tx *sqlx.Tx) error {
		s := store.New(tx, nil)
		return fn(s, network.NewEngine(s, h.picker, slog.Default()))
	})
}

// ListMovements handles GET /movements
func (h *MovementHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	userID, ok := optionalUser(w, r, h.cfg)
	if !ok {
		return
	}

	views, err := view.Movements(r.Context(), store.New(h.db, nil), userID)
	if err != nil {
		respondError(w, err, "list movements")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// CreateMovement handles POST /movements. The creator is subscribed in the
// same transaction.
func (h *MovementHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.CreateMovementRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var movement models.Movement
	err := h.inTx(r.Context(), func(s *store.Store, e *network.Engine) error {
		_, err := s.FindMovementByName(r.Context(), req.Name)
		if err == nil {
			return errNameTaken
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		movement, err = s.CreateMovement(r.Context(), models.Movement{
			Name:             req.Name,
			Interval:         req.Interval,
			ShortDescription: req.ShortDescription,
			Description:      req.Description,
			CreatorID:        userID,
		})
		if err != nil {
			return err
		}

		return e.AddUser(r.Context(), movement.ID, userID)
	})
	if err != nil {
		respondError(w, err, "create movement")
		return
	}

	slog.Info("movement created", "movement_id", movement.ID, "name", movement.Name, "creator_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateMovementResponse{
		MovementID: movement.ID,
		AdminKey:   auth.GenerateAdminKey(movement.ID, h.cfg.AdminKeySalt),
	})
}

// ListSubscriptions handles GET /movements/subscriptions
func (h *MovementHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	views, err := view.Subscriptions(r.Context(), store.New(h.db, nil), userID)
	if err != nil {
		respondError(w, err, "list subscriptions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, views)
}

// GetMovement handles GET /movements/{id}
func (h *MovementHandler) GetMovement(w http.ResponseWriter, r *http.Request) {
	userID, ok := optionalUser(w, r, h.cfg)
	if !ok {
		return
	}

	s := store.New(h.db, nil)
	m, err := loadMovement(r.Context(), s, r.PathValue("id"))
	if err != nil {
		respondError(w, err, "load movement")
		return
	}

	v, err := view.Movement(r.Context(), s, m, userID)
	if err != nil {
		respondError(w, err, "load movement")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}

// Subscribe handles PUT /movements/{id}/subscriber
func (h *MovementHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}
	movementID := r.PathValue("id")

	err := h.inTx(r.Context(), func(s *store.Store, e *network.Engine) error {
		if _, err := loadMovement(r.Context(), s, movementID); err != nil {
			return err
		}
		return e.AddUser(r.Context(), movementID, userID)
	})
	if errors.Is(err, network.ErrAlreadyMember) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Already subscribed"})
		return
	}
	if err != nil {
		respondError(w, err, "subscribe")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Subscribed"})
}

// Unsubscribe handles DELETE /movements/{id}/subscriber
func (h *MovementHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}
	movementID := r.PathValue("id")

	err := h.inTx(r.Context(), func(s *store.Store, e *network.Engine) error {
		if _, err := loadMovement(r.Context(), s, movementID); err != nil {
			return err
		}
		return e.RemoveUser(r.Context(), movementID, userID)
	})
	if errors.Is(err, network.ErrNotAMember) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Not subscribed"})
		return
	}
	if err != nil {
		respondError(w, err, "unsubscribe")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Unsubscribed"})
}

// GetLeader handles GET /movements/{id}/leaders/{leader_id}
func (h *MovementHandler) GetLeader(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	s := store.New(h.db, nil)
	m, err := loadMovement(r.Context(), s, r.PathValue("id"))
	if err != nil {
		respondError(w, err, "load leader")
		return
	}

	detail, err := view.Leader(r.Context(), s, m.ID, userID, r.PathValue("leader_id"))
	if err != nil {
		respondError(w, err, "load leader")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// SwapLeader handles POST /movements/{id}/leaders/{leader_id}
func (h *MovementHandler) SwapLeader(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}
	movementID := r.PathValue("id")
	leaderID := r.PathValue("leader_id")

	var resp models.SwapLeaderResponse
	err := h.inTx(r.Context(), func(s *store.Store, e *network.Engine) error {
		if _, err := loadMovement(r.Context(), s, movementID); err != nil {
			return err
		}

		newLeaderID, err := e.SwapLeader(r.Context(), movementID, userID, leaderID)
		if err != nil {
			return err
		}
		if newLeaderID == nil {
			resp.Message = "Could not find a new leader"
			return nil
		}

		lv, err := view.LeaderSummary(r.Context(), s, movementID, *newLeaderID)
		if err != nil {
			return err
		}
		resp.Leader = &lv
		return nil
	})
	if err != nil {
		respondError(w, err, "swap leader")
		return
	}

	if resp.Leader != nil {
		slog.Info("leader swapped",
			"movement_id", movementID,
			"follower_id", userID,
			"old_leader_id", leaderID,
			"new_leader_id", resp.Leader.ID,
		)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetNetwork handles GET /movements/{id}/network
func (h *MovementHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	s := store.New(h.db, nil)
	m, err := loadMovement(r.Context(), s, r.PathValue("id"))
	if err != nil {
		respondError(w, err, "load network")
		return
	}

	graph, err := view.Network(r.Context(), s, m.ID)
	if err != nil {
		respondError(w, err, "load network")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, graph)
}
