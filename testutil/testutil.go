// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/auth"
	"github.com/danielhkuo/gridt/cliparse"
	"github.com/danielhkuo/gridt/db"
	"github.com/danielhkuo/gridt/models"
	"github.com/danielhkuo/gridt/store"
)

// TestDBURL opens a private in-memory SQLite database
const TestDBURL = ":memory:"

// Epoch is the first instant returned by a test clock
var Epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		AdminKeySalt:  "test-admin-salt",
		UserTokenSalt: "test-token-salt",
		LeaderSeed:    42,
	}
}

// Clock is a deterministic clock that advances by one second per reading.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock whose first reading is Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current reading and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

// Advance moves the clock forward by d without returning a reading.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// CreateTestUser registers a user and returns its ID
func CreateTestUser(t *testing.T, conn *sqlx.DB, username string) string {
	t.Helper()

	u, err := store.New(conn, nil).CreateUser(context.Background(), username, "")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return u.ID
}

// CreateTestMovement creates a daily movement owned by creatorID and returns
// its ID and admin key. The creator is not subscribed.
func CreateTestMovement(t *testing.T, conn *sqlx.DB, cfg cliparse.Config, creatorID, name string) (movementID, adminKey string) {
	t.Helper()

	m, err := store.New(conn, nil).CreateMovement(context.Background(), models.Movement{
		Name:             name,
		Interval:         models.IntervalDaily,
		ShortDescription: "A test movement",
		CreatorID:        creatorID,
	})
	if err != nil {
		t.Fatalf("Failed to create test movement: %v", err)
	}

	return m.ID, auth.GenerateAdminKey(m.ID, cfg.AdminKeySalt)
}

// UserHeaders returns the identity headers for userID
func UserHeaders(cfg cliparse.Config, userID string) map[string]string {
	return map[string]string{
		"X-User-ID":    userID,
		"X-User-Token": auth.GenerateUserToken(userID, cfg.UserTokenSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
