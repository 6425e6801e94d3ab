// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/models"
)

var announcementColumns = []string{"id", "movement_id", "poster_id", "message", "created_at", "updated_at"}

// CreateAnnouncement posts a message to the movement.
func (s *Store) CreateAnnouncement(ctx context.Context, movementID, posterID, message string) (models.Announcement, error) {
	a := models.Announcement{
		ID:         uuid.NewString(),
		MovementID: movementID,
		PosterID:   posterID,
		Message:    message,
		CreatedAt:  s.Now(),
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto("announcement")
	ib.Cols("id", "movement_id", "poster_id", "message", "created_at")
	ib.Values(a.ID, a.MovementID, a.PosterID, a.Message, a.CreatedAt)

	query, args := ib.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return models.Announcement{}, fmt.Errorf("failed to insert announcement: %w", err)
	}

	return a, nil
}

// FindAnnouncement looks an announcement up by id within a movement.
func (s *Store) FindAnnouncement(ctx context.Context, movementID, id string) (models.Announcement, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(announcementColumns...)
	sb.From("announcement")
	sb.Where(sb.Equal("id", id), sb.Equal("movement_id", movementID))

	query, args := sb.Build()
	var a models.Announcement
	if err := sqlx.GetContext(ctx, s.q, &a, query, args...); err != nil {
		return models.Announcement{}, notFound(err)
	}

	return a, nil
}

// ListAnnouncements returns the movement's announcements, newest first.
func (s *Store) ListAnnouncements(ctx context.Context, movementID string) ([]models.Announcement, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(announcementColumns...)
	sb.From("announcement")
	sb.Where(sb.Equal("movement_id", movementID))
	sb.OrderBy("created_at").Desc()

	query, args := sb.Build()
	announcements := []models.Announcement{}
	if err := sqlx.SelectContext(ctx, s.q, &announcements, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}

	return announcements, nil
}

// UpdateAnnouncement replaces the message of an announcement.
func (s *Store) UpdateAnnouncement(ctx context.Context, movementID, id, message string) error {
	ub := s.flavor.NewUpdateBuilder()
	ub.Update("announcement")
	ub.Set(ub.Assign("message", message), ub.Assign("updated_at", s.Now()))
	ub.Where(ub.Equal("id", id), ub.Equal("movement_id", movementID))

	query, args := ub.Build()
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAnnouncement removes an announcement.
func (s *Store) DeleteAnnouncement(ctx context.Context, movementID, id string) error {
	dlb := s.flavor.NewDeleteBuilder()
	dlb.DeleteFrom("announcement")
	dlb.Where(dlb.Equal("id", id), dlb.Equal("movement_id", movementID))

	query, args := dlb.Build()
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}
