// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/models"
)

var userColumns = []string{"id", "username", "bio", "created_at"}

// CreateUser registers a user.
func (s *Store) CreateUser(ctx context.Context, username, bio string) (models.User, error) {
	u := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Bio:       bio,
		CreatedAt: s.Now(),
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto("users")
	ib.Cols(userColumns...)
	ib.Values(u.ID, u.Username, u.Bio, u.CreatedAt)

	query, args := ib.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// FindUser looks a user up by id.
func (s *Store) FindUser(ctx context.Context, id string) (models.User, error) {
	return s.findUserBy(ctx, "id", id)
}

// FindUserByUsername looks a user up by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUserBy(ctx, "username", username)
}

func (s *Store) findUserBy(ctx context.Context, column, value string) (models.User, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(userColumns...)
	sb.From("users")
	sb.Where(sb.Equal(column, value))

	query, args := sb.Build()
	var u models.User
	if err := sqlx.GetContext(ctx, s.q, &u, query, args...); err != nil {
		return models.User{}, notFound(err)
	}

	return u, nil
}

// UserExists reports whether a user with the id exists.
func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := s.FindUser(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindUsers returns the users with the given ids keyed by id. Unknown ids
// are skipped.
func (s *Store) FindUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	sb := s.flavor.NewSelectBuilder()
	sb.Select(userColumns...)
	sb.From("users")
	sb.Where(sb.In("id", sqlbuilder.Flatten(ids)...))

	query, args := sb.Build()
	var rows []models.User
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}

// UpdateBio replaces the user's bio.
func (s *Store) UpdateBio(ctx context.Context, id, bio string) error {
	ub := s.flavor.NewUpdateBuilder()
	ub.Update("users")
	ub.Set(ub.Assign("bio", bio))
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update bio: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}
