// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package network

import (
	"context"

	"github.com/danielhkuo/gridt/store"
)

// AddUser subscribes the user to the movement. The user first receives its
// own leaders and is then offered as a leader to members with a free slot.
func (e *Engine) AddUser(ctx context.Context, movementID, userID string) error {
	member, err := e.store.IsMember(ctx, movementID, userID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}

	if err := e.AssignLeaders(ctx, movementID, userID); err != nil {
		return err
	}
	if err := e.BackfillAsLeader(ctx, movementID, userID); err != nil {
		return err
	}

	e.logger.Info("user joined movement", "movement_id", movementID, "user_id", userID)
	return nil
}

// RemoveUser unsubscribes the user from the movement. Every edge the user
// leads is destroyed before any of its followers is repaired, so the user
// can never be picked as a replacement.
func (e *Engine) RemoveUser(ctx context.Context, movementID, userID string) error {
	member, err := e.store.IsMember(ctx, movementID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotAMember
	}

	own, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: userID,
	})
	if err != nil {
		return err
	}
	for _, a := range own {
		if err := e.destroy(ctx, a); err != nil {
			return err
		}
	}

	led, err := e.store.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		LeaderID:   userID,
	})
	if err != nil {
		return err
	}

	followers := make([]string, 0, len(led))
	for _, a := range led {
		if err := e.destroy(ctx, a); err != nil {
			return err
		}
		// Keep the follower a member while it waits for repair.
		count, err := e.store.CountActiveLeaders(ctx, movementID, a.FollowerID)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := e.ensurePlaceholder(ctx, movementID, a.FollowerID); err != nil {
				return err
			}
		}
		followers = append(followers, a.FollowerID)
	}

	for _, followerID := range followers {
		if err := e.RepairAfterLeaderRemoved(ctx, movementID, followerID, userID); err != nil {
			return err
		}
	}

	e.logger.Info("user left movement",
		"movement_id", movementID,
		"user_id", userID,
		"repaired_followers", len(followers),
	)
	return nil
}
