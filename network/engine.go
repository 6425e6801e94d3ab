// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package network

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/store"
)

// AssociationStore is the persistence the engine needs. *store.Store
// implements it.
type AssociationStore interface {
	ActiveAssociations(ctx context.Context, f store.AssociationFilter) ([]models.Association, error)
	CreateAssociation(ctx context.Context, movementID, followerID string, leaderID *string) (models.Association, error)
	DestroyAssociation(ctx context.Context, id string) error
	CountActiveLeaders(ctx context.Context, movementID, followerID string) (int, error)
	ActiveMembers(ctx context.Context, movementID string) ([]string, error)
	IsMember(ctx context.Context, movementID, userID string) (bool, error)
}

// Engine maintains the follower/leader graph of movements. An Engine holds
// no state of its own and is meant to be built per transaction.
type Engine struct {
	store  AssociationStore
	picker Picker
	logger *slog.Logger
}

// NewEngine creates an engine on s. A nil logger means slog.Default().
func NewEngine(s AssociationStore, picker Picker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: s, picker: picker, logger: logger}
}

// IsMember reports whether the user follows in the movement.
func (e *Engine) IsMember(ctx context.Context, movementID, userID string) (bool, error) {
	return e.store.IsMember(ctx, movementID, userID)
}

// CurrentLeaders returns the ids of the follower's active leaders.
func (e *Engine) CurrentLeaders(ctx context.Context, movementID, followerID string) ([]string, error) {
	edges, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		Leader:     store.WithLeader,
	})
	if err != nil {
		return nil, err
	}

	leaders := make([]string, 0, len(edges))
	for _, a := range edges {
		leaders = append(leaders, *a.LeaderID)
	}
	return leaders, nil
}

// FindCandidateLeaders returns the members of the movement who could lead
// the follower: not the follower, not one of its current leaders and not in
// exclude. The result is sorted by id; empty means nobody is available.
func (e *Engine) FindCandidateLeaders(ctx context.Context, movementID, followerID string, exclude map[string]struct{}) ([]string, error) {
	members, err := e.store.ActiveMembers(ctx, movementID)
	if err != nil {
		return nil, err
	}
	leaders, err := e.CurrentLeaders(ctx, movementID, followerID)
	if err != nil {
		return nil, err
	}

	candidates := []string{}
	for _, id := range members {
		if id == followerID || slices.Contains(leaders, id) {
			continue
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		candidates = append(candidates, id)
	}
	slices.Sort(candidates)
	return candidates, nil
}

// AssignLeaders fills the follower's leader slots up to models.FanOut.
// A follower left without any leader gets a single placeholder.
func (e *Engine) AssignLeaders(ctx context.Context, movementID, followerID string) error {
	return e.assignLeaders(ctx, movementID, followerID, nil)
}

func (e *Engine) assignLeaders(ctx context.Context, movementID, followerID string, exclude map[string]struct{}) error {
	for {
		count, err := e.store.CountActiveLeaders(ctx, movementID, followerID)
		if err != nil {
			return err
		}
		if count >= models.FanOut {
			return nil
		}

		candidates, err := e.FindCandidateLeaders(ctx, movementID, followerID, exclude)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			if count == 0 {
				return e.ensurePlaceholder(ctx, movementID, followerID)
			}
			return nil
		}

		leaderID := candidates[e.picker.IntN(len(candidates))]
		if err := e.link(ctx, movementID, followerID, leaderID); err != nil {
			return err
		}
	}
}

// BackfillAsLeader offers a newly joined member as a leader to every other
// member that still has a free slot and does not follow it yet.
func (e *Engine) BackfillAsLeader(ctx context.Context, movementID, newMemberID string) error {
	members, err := e.store.ActiveMembers(ctx, movementID)
	if err != nil {
		return err
	}

	for _, memberID := range members {
		if memberID == newMemberID {
			continue
		}

		count, err := e.store.CountActiveLeaders(ctx, movementID, memberID)
		if err != nil {
			return err
		}
		if count >= models.FanOut {
			continue
		}

		following, err := e.follows(ctx, movementID, memberID, newMemberID)
		if err != nil {
			return err
		}
		if following {
			continue
		}

		if err := e.link(ctx, movementID, memberID, newMemberID); err != nil {
			return err
		}
	}

	return nil
}

// RepairAfterLeaderRemoved drops the follower's edge to a departed leader,
// if still active, and refills the freed slot. The departed leader is never
// picked as the replacement.
func (e *Engine) RepairAfterLeaderRemoved(ctx context.Context, movementID, followerID, leaderID string) error {
	if err := e.unlink(ctx, movementID, followerID, leaderID); err != nil {
		return err
	}
	return e.assignLeaders(ctx, movementID, followerID, map[string]struct{}{leaderID: {}})
}

// SwapLeader replaces leaderID among the follower's leaders with a random
// candidate and returns the new leader's id. When nobody else is available
// it returns nil and leaves the graph unchanged.
func (e *Engine) SwapLeader(ctx context.Context, movementID, followerID, leaderID string) (*string, error) {
	following, err := e.follows(ctx, movementID, followerID, leaderID)
	if err != nil {
		return nil, err
	}
	if !following {
		return nil, ErrInvalidSwap
	}

	candidates, err := e.FindCandidateLeaders(ctx, movementID, followerID, nil)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	newLeaderID := candidates[e.picker.IntN(len(candidates))]
	if err := e.unlink(ctx, movementID, followerID, leaderID); err != nil {
		return nil, err
	}
	if err := e.link(ctx, movementID, followerID, newLeaderID); err != nil {
		return nil, err
	}

	return &newLeaderID, nil
}

func (e *Engine) follows(ctx context.Context, movementID, followerID, leaderID string) (bool, error) {
	edges, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		LeaderID:   leaderID,
	})
	if err != nil {
		return false, err
	}
	return len(edges) > 0, nil
}

// link creates the edge follower -> leader, replacing a placeholder.
func (e *Engine) link(ctx context.Context, movementID, followerID, leaderID string) error {
	if followerID == leaderID {
		return fmt.Errorf("%w: %s cannot lead itself", ErrInvariantViolation, followerID)
	}

	exists, err := e.follows(ctx, movementID, followerID, leaderID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s already follows %s", ErrInvariantViolation, followerID, leaderID)
	}

	count, err := e.store.CountActiveLeaders(ctx, movementID, followerID)
	if err != nil {
		return err
	}
	if count >= models.FanOut {
		return fmt.Errorf("%w: %s already has %d leaders", ErrInvariantViolation, followerID, count)
	}

	placeholders, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		Leader:     store.PlaceholderOnly,
	})
	if err != nil {
		return err
	}
	for _, p := range placeholders {
		if err := e.store.DestroyAssociation(ctx, p.ID); err != nil {
			return err
		}
	}

	a, err := e.store.CreateAssociation(ctx, movementID, followerID, &leaderID)
	if err != nil {
		return err
	}

	e.logger.Debug("association created",
		"movement_id", movementID,
		"follower_id", followerID,
		"leader_id", leaderID,
		"association_id", a.ID,
	)
	return nil
}

// unlink destroys the active edge follower -> leader, if any.
func (e *Engine) unlink(ctx context.Context, movementID, followerID, leaderID string) error {
	edges, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		LeaderID:   leaderID,
	})
	if err != nil {
		return err
	}

	for _, a := range edges {
		if err := e.destroy(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) destroy(ctx context.Context, a models.Association) error {
	if err := e.store.DestroyAssociation(ctx, a.ID); err != nil {
		return err
	}

	e.logger.Debug("association destroyed",
		"movement_id", a.MovementID,
		"follower_id", a.FollowerID,
		"placeholder", a.IsPlaceholder(),
		"association_id", a.ID,
	)
	return nil
}

func (e *Engine) ensurePlaceholder(ctx context.Context, movementID, followerID string) error {
	placeholders, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		Leader:     store.PlaceholderOnly,
	})
	if err != nil {
		return err
	}
	if len(placeholders) > 0 {
		return nil
	}

	a, err := e.store.CreateAssociation(ctx, movementID, followerID, nil)
	if err != nil {
		return err
	}

	e.logger.Debug("placeholder created",
		"movement_id", movementID,
		"follower_id", followerID,
		"association_id", a.ID,
	)
	return nil
}
