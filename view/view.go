// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/store"
)

// HistoryLength is the number of signals shown on a leader's profile.
const HistoryLength = 3

// ErrNotFollowing is returned when a user asks for the profile of somebody
// who does not lead them.
var ErrNotFollowing = errors.New("user does not follow this leader")

// Reader is the read-only part of *store.Store the views need.
type Reader interface {
	Now() time.Time
	IsMember(ctx context.Context, movementID, userID string) (bool, error)
	ActiveAssociations(ctx context.Context, f store.AssociationFilter) ([]models.Association, error)
	FindUser(ctx context.Context, id string) (models.User, error)
	FindUsers(ctx context.Context, ids []string) (map[string]models.User, error)
	FindMovement(ctx context.Context, id string) (models.Movement, error)
	ListMovements(ctx context.Context) ([]models.Movement, error)
	MemberMovements(ctx context.Context, userID string) ([]string, error)
	LastSignal(ctx context.Context, leaderID, movementID string) (*models.Signal, error)
	SignalHistory(ctx context.Context, leaderID, movementID string, n int) ([]models.Signal, error)
}

// Signal renders a signal relative to now.
func Signal(sig models.Signal, now time.Time) models.SignalView {
	return models.SignalView{
		TimeStamp: sig.SentAt,
		Ago:       humanize.RelTime(sig.SentAt, now, "ago", "from now"),
		Message:   sig.Message,
	}
}

// Movement builds the movement as seen by userID. Leaders and the user's
// own last signal are only filled in when the user is subscribed.
func Movement(ctx context.Context, r Reader, m models.Movement, userID string) (models.MovementView, error) {
	v := models.MovementView{
		ID:               m.ID,
		Name:             m.Name,
		Interval:         m.Interval,
		ShortDescription: m.ShortDescription,
		Description:      m.Description,
	}
	if userID == "" {
		return v, nil
	}

	subscribed, err := r.IsMember(ctx, m.ID, userID)
	if err != nil {
		return models.MovementView{}, err
	}
	v.Subscribed = subscribed
	if !subscribed {
		return v, nil
	}

	now := r.Now()

	last, err := r.LastSignal(ctx, userID, m.ID)
	if err != nil {
		return models.MovementView{}, err
	}
	if last != nil {
		sv := Signal(*last, now)
		v.LastSignalSent = &sv
	}

	edges, err := r.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: m.ID,
		FollowerID: userID,
		Leader:     store.WithLeader,
	})
	if err != nil {
		return models.MovementView{}, err
	}

	ids := make([]string, 0, len(edges))
	for _, a := range edges {
		ids = append(ids, *a.LeaderID)
	}
	users, err := r.FindUsers(ctx, ids)
	if err != nil {
		return models.MovementView{}, err
	}

	v.Leaders = make([]models.LeaderView, 0, len(ids))
	for _, id := range ids {
		u := users[id]
		lv := models.LeaderView{ID: id, Username: u.Username, Bio: u.Bio}

		sig, err := r.LastSignal(ctx, id, m.ID)
		if err != nil {
			return models.MovementView{}, err
		}
		if sig != nil {
			sv := Signal(*sig, now)
			lv.LastSignal = &sv
		}
		v.Leaders = append(v.Leaders, lv)
	}

	return v, nil
}

// Movements returns every movement as seen by userID.
func Movements(ctx context.Context, r Reader, userID string) ([]models.MovementView, error) {
	movements, err := r.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	return movementViews(ctx, r, movements, userID)
}

// Subscriptions returns the movements userID currently follows in.
func Subscriptions(ctx context.Context, r Reader, userID string) ([]models.MovementView, error) {
	ids, err := r.MemberMovements(ctx, userID)
	if err != nil {
		return nil, err
	}

	movements := make([]models.Movement, 0, len(ids))
	for _, id := range ids {
		m, err := r.FindMovement(ctx, id)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	slices.SortFunc(movements, func(a, b models.Movement) int {
		return strings.Compare(a.Name, b.Name)
	})

	return movementViews(ctx, r, movements, userID)
}

func movementViews(ctx context.Context, r Reader, movements []models.Movement, userID string) ([]models.MovementView, error) {
	views := make([]models.MovementView, 0, len(movements))
	for _, m := range movements {
		v, err := Movement(ctx, r, m, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Leader builds the profile of one of the follower's leaders with its
// recent signals in the movement.
func Leader(ctx context.Context, r Reader, movementID, followerID, leaderID string) (models.LeaderDetail, error) {
	edges, err := r.ActiveAssociations(ctx, store.AssociationFilter{
		MovementID: movementID,
		FollowerID: followerID,
		LeaderID:   leaderID,
	})
	if err != nil {
		return models.LeaderDetail{}, err
	}
	if len(edges) == 0 {
		return models.LeaderDetail{}, ErrNotFollowing
	}

	u, err := r.FindUser(ctx, leaderID)
	if err != nil {
		return models.LeaderDetail{}, err
	}

	signals, err := r.SignalHistory(ctx, leaderID, movementID, HistoryLength)
	if err != nil {
		return models.LeaderDetail{}, err
	}

	now := r.Now()
	history := make([]models.SignalView, 0, len(signals))
	for _, sig := range signals {
		history = append(history, Signal(sig, now))
	}

	return models.LeaderDetail{
		ID:            u.ID,
		Username:      u.Username,
		Bio:           u.Bio,
		SignalHistory: history,
	}, nil
}

// LeaderSummary is a leader entry with its last signal, as shown after a
// swap.
func LeaderSummary(ctx context.Context, r Reader, movementID, leaderID string) (models.LeaderView, error) {
	u, err := r.FindUser(ctx, leaderID)
	if err != nil {
		return models.LeaderView{}, err
	}

	lv := models.LeaderView{ID: u.ID, Username: u.Username, Bio: u.Bio}
	sig, err := r.LastSignal(ctx, leaderID, movementID)
	if err != nil {
		return models.LeaderView{}, err
	}
	if sig != nil {
		sv := Signal(*sig, r.Now())
		lv.LastSignal = &sv
	}
	return lv, nil
}

// Network returns the active follower/leader graph of a movement. Every
// member is a node; placeholders produce no edge.
func Network(ctx context.Context, r Reader, movementID string) (models.NetworkView, error) {
	edges, err := r.ActiveAssociations(ctx, store.AssociationFilter{MovementID: movementID})
	if err != nil {
		return models.NetworkView{}, err
	}

	var ids []string
	graph := models.NetworkView{Nodes: []models.NetworkNode{}, Edges: []models.NetworkEdge{}}
	for _, a := range edges {
		if !slices.Contains(ids, a.FollowerID) {
			ids = append(ids, a.FollowerID)
		}
		if a.IsPlaceholder() {
			continue
		}
		graph.Edges = append(graph.Edges, models.NetworkEdge{Follower: a.FollowerID, Leader: *a.LeaderID})
	}
	slices.Sort(ids)

	users, err := r.FindUsers(ctx, ids)
	if err != nil {
		return models.NetworkView{}, err
	}
	for _, id := range ids {
		graph.Nodes = append(graph.Nodes, models.NetworkNode{ID: id, Username: users[id].Username})
	}

	return graph, nil
}
