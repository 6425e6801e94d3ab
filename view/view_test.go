// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/store"
	"github.com/danielhkuo/gridt/testutil"
	"github.com/danielhkuo/gridt/view"
)

type pickFirst struct{}

func (pickFirst) IntN(int) int { return 0 }

func setup(t *testing.T) (context.Context, *store.Store, *testutil.Clock, models.Movement, string, string) {
	t.Helper()
	ctx := context.Background()
	conn := testutil.SetupTestDB(t)
	clock := testutil.NewClock()
	s := store.New(conn, clock.Now)

	alice := testutil.CreateTestUser(t, conn, "alice")
	bob := testutil.CreateTestUser(t, conn, "bob")
	movementID, _ := testutil.CreateTestMovement(t, conn, testutil.GetTestConfig(), alice, "Journaling")
	m, err := s.FindMovement(ctx, movementID)
	require.NoError(t, err)

	engine := network.NewEngine(s, pickFirst{}, nil)
	require.NoError(t, engine.AddUser(ctx, m.ID, alice))
	require.NoError(t, engine.AddUser(ctx, m.ID, bob))

	return ctx, s, clock, m, alice, bob
}

func TestSignal(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := "done"
	v := view.Signal(models.Signal{SentAt: now.Add(-3 * time.Minute), Message: &msg}, now)

	assert.Equal(t, "3 minutes ago", v.Ago)
	assert.Equal(t, &msg, v.Message)
}

func TestMovement(t *testing.T) {
	ctx, s, clock, m, alice, bob := setup(t)

	_, err := s.CreateSignal(ctx, bob, m.ID, nil)
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	v, err := view.Movement(ctx, s, m, alice)
	require.NoError(t, err)
	assert.True(t, v.Subscribed)
	assert.Nil(t, v.LastSignalSent)
	require.Len(t, v.Leaders, 1)
	assert.Equal(t, bob, v.Leaders[0].ID)
	assert.Equal(t, "bob", v.Leaders[0].Username)
	require.NotNil(t, v.Leaders[0].LastSignal)
	assert.Equal(t, "2 hours ago", v.Leaders[0].LastSignal.Ago)

	bobView, err := view.Movement(ctx, s, m, bob)
	require.NoError(t, err)
	require.NotNil(t, bobView.LastSignalSent)

	anon, err := view.Movement(ctx, s, m, "")
	require.NoError(t, err)
	assert.False(t, anon.Subscribed)
	assert.Empty(t, anon.Leaders)
}

func TestMovement_NotSubscribed(t *testing.T) {
	ctx, s, _, m, _, _ := setup(t)
	carol, err := s.CreateUser(ctx, "carol", "")
	require.NoError(t, err)

	v, err := view.Movement(ctx, s, m, carol.ID)
	require.NoError(t, err)
	assert.False(t, v.Subscribed)
	assert.Nil(t, v.Leaders)
	assert.Equal(t, "Journaling", v.Name)
}

func TestLeader(t *testing.T) {
	ctx, s, _, m, alice, bob := setup(t)

	for _, msg := range []string{"one", "two", "three", "four"} {
		_, err := s.CreateSignal(ctx, bob, m.ID, &msg)
		require.NoError(t, err)
	}

	d, err := view.Leader(ctx, s, m.ID, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", d.Username)
	require.Len(t, d.SignalHistory, view.HistoryLength)
	assert.Equal(t, "four", *d.SignalHistory[0].Message)

	carol, err := s.CreateUser(ctx, "carol", "")
	require.NoError(t, err)
	_, err = view.Leader(ctx, s, m.ID, alice, carol.ID)
	assert.ErrorIs(t, err, view.ErrNotFollowing)
}

func TestNetwork(t *testing.T) {
	ctx, s, _, m, alice, bob := setup(t)

	g, err := view.Network(ctx, s, m.ID)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.ElementsMatch(t, []models.NetworkEdge{
		{Follower: alice, Leader: bob},
		{Follower: bob, Leader: alice},
	}, g.Edges)
}

func TestSubscriptions(t *testing.T) {
	ctx, s, _, m, alice, _ := setup(t)

	subs, err := view.Subscriptions(ctx, s, alice)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, m.ID, subs[0].ID)
	assert.True(t, subs[0].Subscribed)

	all, err := view.Movements(ctx, s, alice)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
