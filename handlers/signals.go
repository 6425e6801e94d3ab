// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/db"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/store"
)

type SignalHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewSignalHandler(db *sqlx.DB, cfg cliparse.Config) *SignalHandler {
	return &SignalHandler{db: db, cfg: cfg}
}

// SendSignal handles POST /movements/{id}/signals. The body is optional.
func (h *SignalHandler) SendSignal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}
	movementID := r.PathValue("id")

	var req models.SendSignalRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var message *string
	if req.Message != "" {
		message = &req.Message
	}

	var sig models.Signal
	err := db.WithTx(r.Context(), h.db, func(tx *sqlx.Tx) error {
		s := store.New(tx, nil)
		if _, err := loadMovement(r.Context(), s, movementID); err != nil {
			return err
		}

		member, err := s.IsMember(r.Context(), movementID, userID)
		if err != nil {
			return err
		}
		if !member {
			return network.ErrNotAMember
		}

		sig, err = s.CreateSignal(r.Context(), userID, movementID, message)
		return err
	})
	if err != nil {
		respondError(w, err, "send signal")
		return
	}

	slog.Info("signal sent", "movement_id", movementID, "leader_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, sig)
}
