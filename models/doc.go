// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain and view types for the API.

# Request Types

Types for parsing incoming JSON, each carrying validate tags:

  - RegisterUserRequest: username, bio
  - UpdateBioRequest: bio
  - CreateMovementRequest: name, interval, short_description, description
  - SendSignalRequest: message (optional, at most 140 characters)
  - AnnouncementRequest: message

# Response Types

  - RegisterUserResponse: user_id, user_token
  - CreateMovementResponse: movement_id, admin_key
  - SwapLeaderResponse: new leader, or a message when none was available
  - MessageResponse, CreateAnnouncementResponse, ErrorResponse

# Domain Types

  - User: id, username, bio
  - Movement: a recurring habit users subscribe to
  - Association: follower → leader edge inside a movement; LeaderID nil is a placeholder
  - Signal: a leader's check-in
  - Announcement: a message from the movement admin

# View Types

MovementView, LeaderView, LeaderDetail, SignalView and NetworkView are the
read-only projections built by package view.

# Constants

	FanOut = 4

	IntervalDaily      = "daily"
	IntervalTwiceDaily = "twice daily"
	IntervalWeekly     = "weekly"
*/
package models
