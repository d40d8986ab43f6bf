// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and session token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword("SecurePass123!")
	err = auth.CheckPassword(hash, "SecurePass123!") // nil or ErrInvalidPassword

# Session Tokens

Session tokens use HMAC-SHA256 over the username:

	token := auth.GenerateSessionToken("alice", salt)
	username, err := auth.ValidateSessionToken(token, salt)

The token is the username followed by a dot and the URL-safe base64
signature without padding. Since it's deterministic, the same username and
salt always produce the same token, so validation needs no database lookup.
Changing the salt invalidates every issued token.
*/
package auth
