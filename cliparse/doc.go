// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: connection string or SQLite file (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for movement admin key HMAC (required)
  - UserTokenSalt: Secret for user token HMAC (required)
  - LeaderSeed: Seed for leader selection, 0 seeds from the clock

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--admin-salt  Movement admin key salt
	--token-salt  User token salt
	--seed        Leader selection seed

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_KEY_SALT  → --admin-salt
	USER_TOKEN_SALT → --token-salt
	LEADER_SEED     → --seed

A .env file in the working directory is loaded first; it never overrides
variables already present in the environment. CLI flags take precedence
over both.
*/
package cliparse
