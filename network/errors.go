// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package network

import "errors"

var (
	// ErrInvalidSwap is returned when the leader to swap out does not
	// currently lead the follower.
	ErrInvalidSwap = errors.New("leader is not a current leader of the follower")

	// ErrNotAMember is returned when an operation requires membership of
	// the movement and the user has none.
	ErrNotAMember = errors.New("user is not a member of the movement")

	// ErrAlreadyMember is returned when adding a user who already follows
	// in the movement.
	ErrAlreadyMember = errors.New("user is already a member of the movement")

	// ErrInvariantViolation means the graph would become inconsistent. The
	// surrounding transaction must be rolled back.
	ErrInvariantViolation = errors.New("association invariant violated")
)
