// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the gridt API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Users:

	POST /users        - Register, returns user_id and user_token
	GET  /users/me     - Caller's profile
	PUT  /users/me/bio - Update bio

Movements:

	GET  /movements               - All movements as seen by the caller
	POST /movements               - Create and subscribe the creator
	GET  /movements/subscriptions - Caller's movements
	GET  /movements/{id}          - Movement with the caller's leaders
	GET  /movements/{id}/network  - Follower graph

Membership (requires X-User-ID and X-User-Token):

	PUT    /movements/{id}/subscriber             - Join
	DELETE /movements/{id}/subscriber             - Leave
	GET    /movements/{id}/leaders/{leader_id}    - Leader profile and history
	POST   /movements/{id}/leaders/{leader_id}    - Swap leader
	POST   /movements/{id}/signals                - Send a signal

Announcements (writes require X-Admin-Key):

	GET    /movements/{id}/announcements
	POST   /movements/{id}/announcements
	PUT    /movements/{id}/announcements/{announcement_id}
	DELETE /movements/{id}/announcements/{announcement_id}

# Handler Initialization

The router creates handler instances with dependency injection. All
movement handlers share one network.Picker seeded from cfg.LeaderSeed.
*/
package router
