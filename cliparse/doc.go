/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8310)
  - DatabaseURL: database connection string (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - AdminToken: secret for the administrative endpoints (required)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--admin-token Admin token

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_TOKEN   → --admin-token

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_TOKEN must be provided
  - DATABASE_TYPE, when set, must be postgres or sqlite
*/
package cliparse
