// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/gridt/db"
)

// ErrNotFound is returned when a lookup by id or name matches no row.
var ErrNotFound = errors.New("not found")

// Store is the persistence layer. It runs on a *sqlx.DB or a *sqlx.Tx and
// holds no business rules.
type Store struct {
	q      sqlx.ExtContext
	flavor sqlbuilder.Flavor
	now    func() time.Time
}

// New creates a store on q. A nil clock means time.Now.
func New(q sqlx.ExtContext, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		q:      q,
		flavor: db.Flavor(q.DriverName()),
		now:    now,
	}
}

// Now returns the store clock's current time in UTC.
func (s *Store) Now() time.Time {
	return s.now().UTC()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// nullable converts an optional string into a driver value.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
