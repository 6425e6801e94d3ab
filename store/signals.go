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

var signalColumns = []string{"id", "leader_id", "movement_id", "message", "sent_at"}

// CreateSignal records a check-in by leaderID in the movement.
func (s *Store) CreateSignal(ctx context.Context, leaderID, movementID string, message *string) (models.Signal, error) {
	sig := models.Signal{
		ID:         uuid.NewString(),
		LeaderID:   leaderID,
		MovementID: movementID,
		Message:    message,
		SentAt:     s.Now(),
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto("signal")
	ib.Cols(signalColumns...)
	ib.Values(sig.ID, sig.LeaderID, sig.MovementID, nullable(sig.Message), sig.SentAt)

	query, args := ib.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return models.Signal{}, fmt.Errorf("failed to insert signal: %w", err)
	}

	return sig, nil
}

// SignalHistory returns up to n of the leader's most recent signals in the
// movement, newest first.
func (s *Store) SignalHistory(ctx context.Context, leaderID, movementID string, n int) ([]models.Signal, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(signalColumns...)
	sb.From("signal")
	sb.Where(sb.Equal("movement_id", movementID), sb.Equal("leader_id", leaderID))
	sb.OrderBy("sent_at").Desc()
	sb.Limit(n)

	query, args := sb.Build()
	signals := []models.Signal{}
	if err := sqlx.SelectContext(ctx, s.q, &signals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query signals: %w", err)
	}

	return signals, nil
}

// LastSignal returns the leader's latest signal in the movement, or nil.
func (s *Store) LastSignal(ctx context.Context, leaderID, movementID string) (*models.Signal, error) {
	signals, err := s.SignalHistory(ctx, leaderID, movementID, 1)
	if err != nil {
		return nil, err
	}
	if len(signals) == 0 {
		return nil, nil
	}
	return &signals[0], nil
}
