// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/auth"
	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/store"
)

type UserHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sqlx.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s := store.New(h.db, nil)

	_, err := s.FindUserByUsername(r.Context(), req.Username)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		respondError(w, err, "register user")
		return
	}

	u, err := s.CreateUser(r.Context(), req.Username, req.Bio)
	if err != nil {
		respondError(w, err, "register user")
		return
	}

	slog.Info("user registered", "user_id", u.ID, "username", u.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:    u.ID,
		UserToken: auth.GenerateUserToken(u.ID, h.cfg.UserTokenSalt),
	})
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	u, err := store.New(h.db, nil).FindUser(r.Context(), userID)
	if err != nil {
		respondError(w, err, "load user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// UpdateBio handles PUT /users/me/bio
func (h *UserHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.UpdateBioRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.New(h.db, nil).UpdateBio(r.Context(), userID, req.Bio); err != nil {
		respondError(w, err, "update bio")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Bio updated"})
}
