// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer.

A Store wraps a *sqlx.DB or a *sqlx.Tx and builds every query with
go-sqlbuilder in the flavor of the underlying driver, so the same code
runs on PostgreSQL and SQLite:

	err := db.WithTx(ctx, conn, func(tx *sqlx.Tx) error {
		s := store.New(tx, nil)
		_, err := s.CreateSignal(ctx, userID, movementID, nil)
		return err
	})

# Associations

Associations are never deleted. DestroyAssociation stamps destroyed_at and
every association query filters on the same "destroyed_at IS NULL"
predicate. A row with a NULL leader_id is a placeholder.

# Errors

Lookups that match no row return ErrNotFound. Other failures are returned
wrapped and are not retried.
*/
package store
