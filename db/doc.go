// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and transactions.

# Connecting

Open selects the driver by type ("postgres" via lib/pq, "sqlite" via
modernc.org/sqlite) and verifies the connection:

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

Flavor maps a driver name to the go-sqlbuilder flavor used by package
store, so the same query builders emit $1 placeholders on PostgreSQL and
? on SQLite.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: registered users
  - movement: recurring habits, unique by name
  - association: follower → leader edges, soft-deleted via destroyed_at
  - signal: leader check-ins per movement
  - announcement: admin messages per movement

# Relationships

	movement 1──* association *──1 users (follower)
	association *──0..1 users (leader)
	movement 1──* signal
	movement 1──* announcement

A partial unique index on association(movement_id, follower_id, leader_id)
WHERE destroyed_at IS NULL rejects duplicate active edges, and a CHECK
constraint rejects self-loops.

# Transactions

WithTx wraps a unit of work; every request that changes the follower graph
runs inside one:

	err := db.WithTx(ctx, conn, func(tx *sqlx.Tx) error {
		...
	})
*/
package db
