// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

CreateSchema is idempotent (IF NOT EXISTS everywhere) and is called once
at startup:

	if err := db.CreateSchema(dbConn); err != nil {
		// ...
	}

# Uniqueness invariants

The schema is the backstop for the casting invariants:

  - voter.document is unique: one registry entry per person
  - ballot (voter_id, council_id) is unique: at most one ballot per
    voter per council
  - slate (number, council_id, category) is unique
  - tally_record is keyed by (slate_id, council_id, category)

Voter and slate/council rows are provisioned externally before the
voting window opens; this package only guarantees the tables exist.
*/
package db
