// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gridt/auth"
	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/store"
	"github.com/danielhkuo/gridt/view"
)

var (
	errMovementNotFound = fmt.Errorf("movement %w", store.ErrNotFound)
	errNameTaken        = errors.New("movement name already taken")
)

// currentUser returns the caller identified by X-User-ID and X-User-Token.
// ok is false when the request carries no identity at all.
func currentUser(r *http.Request, cfg cliparse.Config) (userID string, ok bool, err error) {
	userID = r.Header.Get("X-User-ID")
	token := r.Header.Get("X-User-Token")
	if userID == "" && token == "" {
		return "", false, nil
	}
	if err := auth.ValidateUserToken(userID, token, cfg.UserTokenSalt); err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// requireUser authenticates the caller and writes a 401 when it cannot.
func requireUser(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (string, bool) {
	userID, ok, err := currentUser(r, cfg)
	if err != nil || !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or missing user token")
		return "", false
	}
	return userID, true
}

// optionalUser authenticates the caller if it sent credentials. Bad
// credentials still get a 401.
func optionalUser(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (string, bool) {
	userID, _, err := currentUser(r, cfg)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
		return "", false
	}
	return userID, true
}

// requireAdmin checks the movement admin key and writes a 403 when it is
// wrong.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config, movementID string) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(movementID, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid admin key")
		return false
	}
	return true
}

func loadMovement(ctx context.Context, s *store.Store, id string) (models.Movement, error) {
	m, err := s.FindMovement(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Movement{}, errMovementNotFound
	}
	return m, err
}

// respondError maps an error from the store, network or view layers to
// a response. Unexpected errors are logged and reported as 500.
func respondError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, middleware.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errMovementNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Movement not found")
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, network.ErrInvalidSwap),
		errors.Is(err, network.ErrNotAMember),
		errors.Is(err, view.ErrNotFollowing):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errNameTaken):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
