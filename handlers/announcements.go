// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/middleware"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/store"
)

type AnnouncementHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewAnnouncementHandler(db *sqlx.DB, cfg cliparse.Config) *AnnouncementHandler {
	return &AnnouncementHandler{db: db, cfg: cfg}
}

// ListAnnouncements handles GET /movements/{id}/announcements
func (h *AnnouncementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	s := store.New(h.db, nil)
	m, err := loadMovement(r.Context(), s, r.PathValue("id"))
	if err != nil {
		respondError(w, err, "list announcements")
		return
	}

	announcements, err := s.ListAnnouncements(r.Context(), m.ID)
	if err != nil {
		respondError(w, err, "list announcements")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, announcements)
}

// CreateAnnouncement handles POST /movements/{id}/announcements
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	movementID := r.PathValue("id")
	if !requireAdmin(w, r, h.cfg, movementID) {
		return
	}
	userID, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.AnnouncementRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s := store.New(h.db, nil)
	if _, err := loadMovement(r.Context(), s, movementID); err != nil {
		respondError(w, err, "create announcement")
		return
	}

	a, err := s.CreateAnnouncement(r.Context(), movementID, userID, req.Message)
	if err != nil {
		respondError(w, err, "create announcement")
		return
	}

	slog.Info("announcement created", "movement_id", movementID, "announcement_id", a.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAnnouncementResponse{AnnouncementID: a.ID})
}

// UpdateAnnouncement handles PUT /movements/{id}/announcements/{announcement_id}
func (h *AnnouncementHandler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	movementID := r.PathValue("id")
	if !requireAdmin(w, r, h.cfg, movementID) {
		return
	}

	var req models.AnnouncementRequest
	if err := middleware.ParseAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := store.New(h.db, nil).UpdateAnnouncement(r.Context(), movementID, r.PathValue("announcement_id"), req.Message)
	if err != nil {
		respondError(w, err, "update announcement")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Announcement updated"})
}

// DeleteAnnouncement handles DELETE /movements/{id}/announcements/{announcement_id}
func (h *AnnouncementHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	movementID := r.PathValue("id")
	if !requireAdmin(w, r, h.cfg, movementID) {
		return
	}

	err := store.New(h.db, nil).DeleteAnnouncement(r.Context(), movementID, r.PathValue("announcement_id"))
	if err != nil {
		respondError(w, err, "delete announcement")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Announcement deleted"})
}
