// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys and user tokens.

Both are HMAC-SHA256 signatures of an id, URL-safe base64 encoded without
padding. They are deterministic, so neither is stored in the database.

# Admin Keys

Handed to the creator of a movement and required to manage its
announcements:

	adminKey := auth.GenerateAdminKey(movementID, salt)
	err := auth.ValidateAdminKey(movementID, adminKey, salt)

# User Tokens

Returned on registration and sent with every request in X-User-Token next
to X-User-ID:

	token := auth.GenerateUserToken(userID, salt)
	err := auth.ValidateUserToken(userID, token, salt)

A key for one scope never validates in the other, even under the same salt.
*/
package auth
