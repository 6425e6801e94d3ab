// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package view builds the read-only projections served by the API: a
// movement as seen by one user, a leader's profile and the movement graph.
// Signal times are rendered relative to the store's clock.
package view
