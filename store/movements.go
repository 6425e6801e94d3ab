// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/models"
)

var movementColumns = []string{
	"id", "name", "repeat_interval", "short_description", "description", "creator_id", "created_at",
}

// CreateMovement inserts m with a fresh id and creation time and returns
// the stored movement.
func (s *Store) CreateMovement(ctx context.Context, m models.Movement) (models.Movement, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = s.Now()

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto("movement")
	ib.Cols(movementColumns...)
	ib.Values(m.ID, m.Name, m.Interval, m.ShortDescription, m.Description, m.CreatorID, m.CreatedAt)

	query, args := ib.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return models.Movement{}, fmt.Errorf("failed to insert movement: %w", err)
	}

	return m, nil
}

// FindMovement looks a movement up by id.
func (s *Store) FindMovement(ctx context.Context, id string) (models.Movement, error) {
	return s.findMovementBy(ctx, "id", id)
}

// FindMovementByName looks a movement up by its unique name.
func (s *Store) FindMovementByName(ctx context.Context, name string) (models.Movement, error) {
	return s.findMovementBy(ctx, "name", name)
}

func (s *Store) findMovementBy(ctx context.Context, column, value string) (models.Movement, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(movementColumns...)
	sb.From("movement")
	sb.Where(sb.Equal(column, value))

	query, args := sb.Build()
	var m models.Movement
	if err := sqlx.GetContext(ctx, s.q, &m, query, args...); err != nil {
		return models.Movement{}, notFound(err)
	}

	return m, nil
}

// MovementExists reports whether a movement with the id exists.
func (s *Store) MovementExists(ctx context.Context, id string) (bool, error) {
	_, err := s.FindMovement(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListMovements returns every movement ordered by name.
func (s *Store) ListMovements(ctx context.Context) ([]models.Movement, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(movementColumns...)
	sb.From("movement")
	sb.OrderBy("name")

	query, args := sb.Build()
	movements := []models.Movement{}
	if err := sqlx.SelectContext(ctx, s.q, &movements, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}

	return movements, nil
}
