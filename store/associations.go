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

// activePredicate is the only definition of "active" used in SQL.
const activePredicate = "destroyed_at IS NULL"

// IsActive reports whether an association has not been destroyed.
func IsActive(a models.Association) bool {
	return a.DestroyedAt == nil
}

// LeaderMatch narrows an association query by its leader column.
type LeaderMatch int

const (
	AnyLeader LeaderMatch = iota
	WithLeader
	PlaceholderOnly
)

// AssociationFilter selects active associations in one movement. Empty
// FollowerID or LeaderID match any value.
type AssociationFilter struct {
	MovementID string
	FollowerID string
	LeaderID   string
	Leader     LeaderMatch
}

var associationColumns = []string{
	"id", "movement_id", "follower_id", "leader_id", "created_at", "destroyed_at",
}

// ActiveAssociations returns the active associations matching f, oldest first.
func (s *Store) ActiveAssociations(ctx context.Context, f AssociationFilter) ([]models.Association, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(associationColumns...)
	sb.From("association")
	sb.Where(sb.Equal("movement_id", f.MovementID), activePredicate)
	if f.FollowerID != "" {
		sb.Where(sb.Equal("follower_id", f.FollowerID))
	}
	if f.LeaderID != "" {
		sb.Where(sb.Equal("leader_id", f.LeaderID))
	}
	switch f.Leader {
	case WithLeader:
		sb.Where(sb.IsNotNull("leader_id"))
	case PlaceholderOnly:
		sb.Where(sb.IsNull("leader_id"))
	}
	sb.OrderBy("created_at", "id")

	query, args := sb.Build()
	associations := []models.Association{}
	if err := sqlx.SelectContext(ctx, s.q, &associations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query associations: %w", err)
	}

	return associations, nil
}

// CreateAssociation inserts an active association. A nil leaderID creates
// a placeholder.
func (s *Store) CreateAssociation(ctx context.Context, movementID, followerID string, leaderID *string) (models.Association, error) {
	a := models.Association{
		ID:         uuid.NewString(),
		MovementID: movementID,
		FollowerID: followerID,
		LeaderID:   leaderID,
		CreatedAt:  s.Now(),
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto("association")
	ib.Cols("id", "movement_id", "follower_id", "leader_id", "created_at")
	ib.Values(a.ID, a.MovementID, a.FollowerID, nullable(a.LeaderID), a.CreatedAt)

	query, args := ib.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return models.Association{}, fmt.Errorf("failed to insert association: %w", err)
	}

	return a, nil
}

// DestroyAssociation marks an active association as destroyed. The row is
// kept.
func (s *Store) DestroyAssociation(ctx context.Context, id string) error {
	ub := s.flavor.NewUpdateBuilder()
	ub.Update("association")
	ub.Set(ub.Assign("destroyed_at", s.Now()))
	ub.Where(ub.Equal("id", id), activePredicate)

	query, args := ub.Build()
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to destroy association: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to destroy association: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// CountActiveLeaders counts the follower's leader-bearing associations.
func (s *Store) CountActiveLeaders(ctx context.Context, movementID, followerID string) (int, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("association")
	sb.Where(
		sb.Equal("movement_id", movementID),
		sb.Equal("follower_id", followerID),
		sb.IsNotNull("leader_id"),
		activePredicate,
	)

	query, args := sb.Build()
	var n int
	if err := sqlx.GetContext(ctx, s.q, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count leaders: %w", err)
	}

	return n, nil
}

// ActiveMembers returns the ids of every user following in the movement,
// sorted.
func (s *Store) ActiveMembers(ctx context.Context, movementID string) ([]string, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select("follower_id").Distinct()
	sb.From("association")
	sb.Where(sb.Equal("movement_id", movementID), activePredicate)
	sb.OrderBy("follower_id")

	query, args := sb.Build()
	members := []string{}
	if err := sqlx.SelectContext(ctx, s.q, &members, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}

	return members, nil
}

// IsMember reports whether the user follows in the movement.
func (s *Store) IsMember(ctx context.Context, movementID, userID string) (bool, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From("association")
	sb.Where(
		sb.Equal("movement_id", movementID),
		sb.Equal("follower_id", userID),
		activePredicate,
	)

	query, args := sb.Build()
	var n int
	if err := sqlx.GetContext(ctx, s.q, &n, query, args...); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return n > 0, nil
}

// MemberMovements returns the ids of the movements the user follows in.
func (s *Store) MemberMovements(ctx context.Context, userID string) ([]string, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select("movement_id").Distinct()
	sb.From("association")
	sb.Where(sb.Equal("follower_id", userID), activePredicate)
	sb.OrderBy("movement_id")

	query, args := sb.Build()
	movements := []string{}
	if err := sqlx.SelectContext(ctx, s.q, &movements, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}

	return movements, nil
}
