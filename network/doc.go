// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package network maintains the follower/leader graph of each movement.

Every member of a movement follows up to models.FanOut leaders, picked
uniformly at random among the other members. A member nobody can lead
holds a single placeholder association instead.

# Operations

  - AddUser assigns the joining user's leaders, then offers the user as a
    leader to every member with a free slot.
  - RemoveUser destroys the leaving user's edges and repairs each follower
    it used to lead.
  - SwapLeader replaces one leader with a random candidate, or does nothing
    when no candidate exists.

# Invariants

Within one movement, for every follower:

  - no edge points at the follower itself;
  - no (follower, leader) pair is active twice;
  - at most models.FanOut leaders are active;
  - a placeholder never coexists with a real leader.

Violations are reported as ErrInvariantViolation and the caller's
transaction must be rolled back.

# Concurrency

An Engine is built on a transaction-scoped store and does no locking of
its own. Concurrent joins to the same movement are not coordinated beyond
the database's transaction isolation.
*/
package network
