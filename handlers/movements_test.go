// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/testutil"
)

func newMovementHandler(t *testing.T) (*MovementHandler, cliparse.Config) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return NewMovementHandler(db, cfg, network.NewPicker(cfg.LeaderSeed)), cfg
}

func subscribe(t *testing.T, h *MovementHandler, cfg cliparse.Config, movementID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("PUT", "/movements/"+movementID+"/subscriber", nil, testutil.UserHeaders(cfg, userID))
	req.SetPathValue("id", movementID)
	w := httptest.NewRecorder()
	h.Subscribe(w, req)
	return w
}

func getMovement(t *testing.T, h *MovementHandler, cfg cliparse.Config, movementID, userID string) models.MovementView {
	t.Helper()
	req := testutil.MakeRequest("GET", "/movements/"+movementID, nil, testutil.UserHeaders(cfg, userID))
	req.SetPathValue("id", movementID)
	w := httptest.NewRecorder()
	h.GetMovement(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var v models.MovementView
	testutil.AssertJSON(t, w, &v)
	return v
}

func TestCreateMovement(t *testing.T) {
	h, cfg := newMovementHandler(t)
	creator := testutil.CreateTestUser(t, h.db, "creator")
	headers := testutil.UserHeaders(cfg, creator)

	valid := models.CreateMovementRequest{
		Name:             "Morning Run",
		Interval:         models.IntervalDaily,
		ShortDescription: "Run before breakfast",
	}

	testCases := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{"valid movement", valid, headers, http.StatusCreated},
		{"duplicate name", valid, headers, http.StatusConflict},
		{"no identity", valid, nil, http.StatusUnauthorized},
		{"name too short", models.CreateMovementRequest{Name: "Run", Interval: "daily", ShortDescription: "Run before breakfast"}, headers, http.StatusBadRequest},
		{"bad interval", models.CreateMovementRequest{Name: "Evening Run", Interval: "monthly", ShortDescription: "Run before dinner"}, headers, http.StatusBadRequest},
		{"invalid JSON", "not an object", headers, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/movements", tc.body, tc.headers)
			w := httptest.NewRecorder()

			h.CreateMovement(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreateMovementResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.MovementID == "" || resp.AdminKey == "" {
				t.Fatal("Expected movement_id and admin_key")
			}

			v := getMovement(t, h, cfg, resp.MovementID, creator)
			if !v.Subscribed {
				t.Error("Expected creator to be subscribed")
			}
		})
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	bob := testutil.CreateTestUser(t, h.db, "bob")
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")

	testutil.AssertStatus(t, subscribe(t, h, cfg, movementID, alice), http.StatusOK)
	testutil.AssertStatus(t, subscribe(t, h, cfg, movementID, bob), http.StatusOK)

	w := subscribe(t, h, cfg, movementID, bob)
	testutil.AssertStatus(t, w, http.StatusOK)
	var msg models.MessageResponse
	testutil.AssertJSON(t, w, &msg)
	if msg.Message != "Already subscribed" {
		t.Errorf("Expected 'Already subscribed', got '%s'", msg.Message)
	}

	v := getMovement(t, h, cfg, movementID, alice)
	if len(v.Leaders) != 1 || v.Leaders[0].ID != bob {
		t.Fatalf("Expected bob as alice's only leader, got %+v", v.Leaders)
	}

	unsubscribe := func(userID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/movements/"+movementID+"/subscriber", nil, testutil.UserHeaders(cfg, userID))
		req.SetPathValue("id", movementID)
		w := httptest.NewRecorder()
		h.Unsubscribe(w, req)
		return w
	}

	testutil.AssertStatus(t, unsubscribe(bob), http.StatusOK)
	testutil.AssertStatus(t, unsubscribe(bob), http.StatusOK)

	v = getMovement(t, h, cfg, movementID, alice)
	if !v.Subscribed {
		t.Error("Expected alice to stay subscribed")
	}
	if len(v.Leaders) != 0 {
		t.Errorf("Expected no leaders after bob left, got %d", len(v.Leaders))
	}

	if v := getMovement(t, h, cfg, movementID, bob); v.Subscribed {
		t.Error("Expected bob to be unsubscribed")
	}
}

func TestSubscribe_UnknownMovement(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")

	testutil.AssertStatus(t, subscribe(t, h, cfg, "missing", alice), http.StatusNotFound)
}

func TestGetMovement_Anonymous(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")
	subscribe(t, h, cfg, movementID, alice)

	req := testutil.MakeRequest("GET", "/movements/"+movementID, nil, nil)
	req.SetPathValue("id", movementID)
	w := httptest.NewRecorder()
	h.GetMovement(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var v models.MovementView
	testutil.AssertJSON(t, w, &v)
	if v.Subscribed || v.Name != "Reading" {
		t.Errorf("Unexpected anonymous view: %+v", v)
	}

	req = testutil.MakeRequest("GET", "/movements/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	h.GetMovement(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSwapLeader(t *testing.T) {
	h, cfg := newMovementHandler(t)
	users := make([]string, 6)
	for i, name := range []string{"ann", "ben", "cat", "dan", "eve", "fay"} {
		users[i] = testutil.CreateTestUser(t, h.db, name)
	}
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, users[0], "Stretching")
	for _, u := range users {
		testutil.AssertStatus(t, subscribe(t, h, cfg, movementID, u), http.StatusOK)
	}

	swap := func(follower, leader string) *httptest.ResponseRecorder {
		path := "/movements/" + movementID + "/leaders/" + leader
		req := testutil.MakeRequest("POST", path, nil, testutil.UserHeaders(cfg, follower))
		req.SetPathValue("id", movementID)
		req.SetPathValue("leader_id", leader)
		w := httptest.NewRecorder()
		h.SwapLeader(w, req)
		return w
	}

	last := users[5]
	before := getMovement(t, h, cfg, movementID, last)
	if len(before.Leaders) != models.FanOut {
		t.Fatalf("Expected %d leaders, got %d", models.FanOut, len(before.Leaders))
	}

	t.Run("not a leader", func(t *testing.T) {
		testutil.AssertStatus(t, swap(last, last), http.StatusBadRequest)
	})

	t.Run("replacement found", func(t *testing.T) {
		old := before.Leaders[0].ID
		w := swap(last, old)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SwapLeaderResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Leader == nil {
			t.Fatalf("Expected a new leader, got message '%s'", resp.Message)
		}
		if resp.Leader.ID == old {
			t.Error("Swap returned the old leader")
		}

		after := getMovement(t, h, cfg, movementID, last)
		if len(after.Leaders) != models.FanOut {
			t.Errorf("Expected %d leaders after swap, got %d", models.FanOut, len(after.Leaders))
		}
		for _, l := range after.Leaders {
			if l.ID == old {
				t.Error("Old leader still present after swap")
			}
		}
	})
}

func TestSwapLeader_NoReplacement(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	bob := testutil.CreateTestUser(t, h.db, "bob")
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")
	subscribe(t, h, cfg, movementID, alice)
	subscribe(t, h, cfg, movementID, bob)

	req := testutil.MakeRequest("POST", "/movements/"+movementID+"/leaders/"+bob, nil, testutil.UserHeaders(cfg, alice))
	req.SetPathValue("id", movementID)
	req.SetPathValue("leader_id", bob)
	w := httptest.NewRecorder()
	h.SwapLeader(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.SwapLeaderResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Leader != nil || resp.Message == "" {
		t.Errorf("Expected a message and no leader, got %+v", resp)
	}

	v := getMovement(t, h, cfg, movementID, alice)
	if len(v.Leaders) != 1 || v.Leaders[0].ID != bob {
		t.Errorf("Expected bob to remain alice's leader, got %+v", v.Leaders)
	}
}

func TestGetLeader(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	bob := testutil.CreateTestUser(t, h.db, "bob")
	carol := testutil.CreateTestUser(t, h.db, "carol")
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")
	subscribe(t, h, cfg, movementID, alice)
	subscribe(t, h, cfg, movementID, bob)

	get := func(leader string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/movements/"+movementID+"/leaders/"+leader, nil, testutil.UserHeaders(cfg, alice))
		req.SetPathValue("id", movementID)
		req.SetPathValue("leader_id", leader)
		w := httptest.NewRecorder()
		h.GetLeader(w, req)
		return w
	}

	w := get(bob)
	testutil.AssertStatus(t, w, http.StatusOK)
	var detail models.LeaderDetail
	testutil.AssertJSON(t, w, &detail)
	if detail.Username != "bob" {
		t.Errorf("Expected username 'bob', got '%s'", detail.Username)
	}
	if detail.SignalHistory == nil || len(detail.SignalHistory) != 0 {
		t.Errorf("Expected empty signal history, got %+v", detail.SignalHistory)
	}

	testutil.AssertStatus(t, get(carol), http.StatusBadRequest)
}

func TestGetNetwork(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	bob := testutil.CreateTestUser(t, h.db, "bob")
	carol := testutil.CreateTestUser(t, h.db, "carol")
	movementID, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")
	for _, u := range []string{alice, bob, carol} {
		subscribe(t, h, cfg, movementID, u)
	}

	req := testutil.MakeRequest("GET", "/movements/"+movementID+"/network", nil, nil)
	req.SetPathValue("id", movementID)
	w := httptest.NewRecorder()
	h.GetNetwork(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var graph models.NetworkView
	testutil.AssertJSON(t, w, &graph)
	if len(graph.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(graph.Nodes))
	}
	// Everyone leads everyone else in a three-member movement
	if len(graph.Edges) != 6 {
		t.Errorf("Expected 6 edges, got %d", len(graph.Edges))
	}
}

func TestListSubscriptions(t *testing.T) {
	h, cfg := newMovementHandler(t)
	alice := testutil.CreateTestUser(t, h.db, "alice")
	reading, _ := testutil.CreateTestMovement(t, h.db, cfg, alice, "Reading")
	testutil.CreateTestMovement(t, h.db, cfg, alice, "Writing")
	subscribe(t, h, cfg, reading, alice)

	req := testutil.MakeRequest("GET", "/movements/subscriptions", nil, testutil.UserHeaders(cfg, alice))
	w := httptest.NewRecorder()
	h.ListSubscriptions(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var subs []models.MovementView
	testutil.AssertJSON(t, w, &subs)
	if len(subs) != 1 || subs[0].ID != reading {
		t.Errorf("Expected only Reading, got %+v", subs)
	}

	req = testutil.MakeRequest("GET", "/movements", nil, testutil.UserHeaders(cfg, alice))
	w = httptest.NewRecorder()
	h.ListMovements(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var all []models.MovementView
	testutil.AssertJSON(t, w, &all)
	if len(all) != 2 {
		t.Errorf("Expected 2 movements, got %d", len(all))
	}
}
