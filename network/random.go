// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package network

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses an index in [0, n).
type Picker interface {
	IntN(n int) int
}

// LockedPicker is a Picker safe for use by concurrent requests.
type LockedPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker returns a picker seeded with seed. A zero seed draws a random
// one.
func NewPicker(seed int64) *LockedPicker {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &LockedPicker{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// IntN returns a uniform index in [0, n). n must be positive.
func (p *LockedPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}
