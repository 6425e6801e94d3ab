// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Statements are kept to the subset of SQL shared by PostgreSQL and SQLite.
// Timestamps are always written by the application in UTC.
var schema = []string{
	// Users
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		bio TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,

	// Movements
	`CREATE TABLE IF NOT EXISTS movement (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		repeat_interval TEXT NOT NULL CHECK (repeat_interval IN ('daily', 'twice daily', 'weekly')),
		short_description TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		creator_id TEXT NOT NULL REFERENCES users(id),
		created_at TIMESTAMP NOT NULL
	)`,

	// Follower -> leader edges, soft-deleted through destroyed_at
	`CREATE TABLE IF NOT EXISTS association (
		id TEXT PRIMARY KEY,
		movement_id TEXT NOT NULL REFERENCES movement(id) ON DELETE CASCADE,
		follower_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		leader_id TEXT REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		destroyed_at TIMESTAMP,
		CHECK (leader_id IS NULL OR leader_id <> follower_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_association_follower ON association(movement_id, follower_id)`,
	`CREATE INDEX IF NOT EXISTS idx_association_leader ON association(movement_id, leader_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_association_active_edge
		ON association(movement_id, follower_id, leader_id)
		WHERE destroyed_at IS NULL`,

	// Signals
	`CREATE TABLE IF NOT EXISTS signal (
		id TEXT PRIMARY KEY,
		leader_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movement_id TEXT NOT NULL REFERENCES movement(id) ON DELETE CASCADE,
		message TEXT,
		sent_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_signal_leader ON signal(movement_id, leader_id, sent_at)`,

	// Announcements
	`CREATE TABLE IF NOT EXISTS announcement (
		id TEXT PRIMARY KEY,
		movement_id TEXT NOT NULL REFERENCES movement(id) ON DELETE CASCADE,
		poster_id TEXT NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_announcement_movement ON announcement(movement_id, created_at)`,
}
