// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/network"
	"github.com/danielhkuo/gridt/testutil"
)

func TestSendSignal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewSignalHandler(db, cfg)
	movements := NewMovementHandler(db, cfg, network.NewPicker(cfg.LeaderSeed))

	alice := testutil.CreateTestUser(t, db, "alice")
	bob := testutil.CreateTestUser(t, db, "bob")
	outsider := testutil.CreateTestUser(t, db, "outsider")
	movementID, _ := testutil.CreateTestMovement(t, db, cfg, alice, "Reading")
	subscribe(t, movements, cfg, movementID, alice)
	subscribe(t, movements, cfg, movementID, bob)

	testCases := []struct {
		name           string
		movementID     string
		userID         string
		body           interface{}
		expectedStatus int
	}{
		{"with message", movementID, bob, models.SendSignalRequest{Message: "Read chapter 4"}, http.StatusCreated},
		{"without body", movementID, bob, nil, http.StatusCreated},
		{"message too long", movementID, bob, models.SendSignalRequest{Message: strings.Repeat("x", 141)}, http.StatusBadRequest},
		{"not a member", movementID, outsider, nil, http.StatusBadRequest},
		{"unknown movement", "missing", bob, nil, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/movements/"+tc.movementID+"/signals", tc.body, testutil.UserHeaders(cfg, tc.userID))
			req.SetPathValue("id", tc.movementID)
			w := httptest.NewRecorder()

			handler.SendSignal(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}

	// alice follows bob and sees his latest check-in
	v := getMovement(t, movements, cfg, movementID, alice)
	if len(v.Leaders) != 1 || v.Leaders[0].LastSignal == nil {
		t.Fatalf("Expected bob's last signal on alice's view, got %+v", v.Leaders)
	}

	bobView := getMovement(t, movements, cfg, movementID, bob)
	if bobView.LastSignalSent == nil {
		t.Error("Expected bob's own last signal")
	}
}

func TestSendSignal_RequiresIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewSignalHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/movements/any/signals", nil, nil)
	req.SetPathValue("id", "any")
	w := httptest.NewRecorder()

	handler.SendSignal(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
