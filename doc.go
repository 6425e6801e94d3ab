// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the gridt API server.

gridt is a peer-accountability habit tracker. Users subscribe to
movements, each member is given up to four peers to follow inside a
movement, and members send signals that their followers see.

# Starting the Server

The server reads CLI flags, environment variables and an optional .env file:

	DATABASE_URL=gridt.db ADMIN_KEY_SALT=... USER_TOKEN_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for movement admin keys
  - USER_TOKEN_SALT (--token-salt): Secret for user tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - LEADER_SEED (--seed): Seed for leader selection, 0 picks a random seed

# Architecture

  - handlers: HTTP request handlers (users, movements, signals, announcements)
  - router: Route definitions using Go 1.22+ routing
  - network: Leader assignment engine and movement membership
  - store: Association store and record directories
  - view: Movement and network projections
  - middleware: CORS, logging, JSON helpers, validation
  - models: Domain and request/response types
  - auth: Admin keys and user tokens
  - db: Driver selection, schema and transactions
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
