// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FESC electoral voting API
server.

The service runs institutional elections for a higher-education
community: four voter categories (students, teachers, graduates,
administrative staff) elect representative slates for one or more
governing councils. Each voter casts at most once, choosing one slate
per council, virtually or at a jury-supervised physical station.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL=postgres://... ADMIN_TOKEN=... go run main.go

Or with flags:

	go run main.go -p 8310 -d "postgres://..." -admin-token "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - ADMIN_TOKEN (-admin-token): shared secret for the jury, results,
    and repair endpoints

Optional settings:

  - PORT (-p): server port (default: 8310)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - registry: voter eligibility, jury confirmation, vote override
  - catalog: slate and candidate listing per category
  - voting: the transactional ballot-casting workflow
  - tally: de-identified counts, reconciliation, ballot purge
  - stats: cached participation snapshot
  - handlers: HTTP request handlers over the domain services
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - models: request/response and domain types
  - auth: admin token validation and ID generation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
