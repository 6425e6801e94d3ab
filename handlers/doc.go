// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the gridt API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: registration and profile
  - MovementHandler: movements, subscriptions, leaders and the network graph
  - SignalHandler: check-ins sent by members
  - AnnouncementHandler: admin announcements

Handlers are created via constructor functions that accept *sqlx.DB and Config.
MovementHandler also takes the network.Picker used to choose leaders:

	movementHandler := handlers.NewMovementHandler(db, cfg, network.NewPicker(cfg.LeaderSeed))

# Identity

Requests identify the caller with the X-User-ID and X-User-Token headers
returned by POST /users. Announcement writes also require the movement's
X-Admin-Key, returned once by POST /movements.

# Transactions

Every request that changes the follower graph runs in a single transaction
through db.WithTx, with a store.Store and network.Engine bound to that
transaction. Subscribing, unsubscribing and swapping either apply fully or
not at all.

# Errors

Store and engine errors are mapped to status codes in one place
(respondError): validation and invalid graph operations give 400, missing
records 404, duplicate names 409. Anything else is logged and returned as
500.
*/
package handlers
