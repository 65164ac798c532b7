// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voter registry (provisioned before the voting window opens)
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    document TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL CHECK (category IN ('student', 'teacher', 'graduate', 'administrative')),
    voting_mode TEXT NOT NULL DEFAULT 'unset' CHECK (voting_mode IN ('unset', 'in_person', 'virtual')),
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voting_ip TEXT,
    voted_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_voter_document ON voter(document);
CREATE INDEX IF NOT EXISTS idx_voter_voting_ip ON voter(voting_ip) WHERE voting_ip IS NOT NULL;

-- Council types (e.g. Academic Council)
CREATE TABLE IF NOT EXISTS council_type (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    active BOOLEAN NOT NULL DEFAULT TRUE
);

-- Candidate slates, one per council and voter category
CREATE TABLE IF NOT EXISTS slate (
    id TEXT PRIMARY KEY,
    number INTEGER NOT NULL,
    name TEXT NOT NULL,
    council_id TEXT NOT NULL REFERENCES council_type(id) ON DELETE CASCADE,
    category TEXT NOT NULL CHECK (category IN ('student', 'teacher', 'graduate', 'administrative')),
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (number, council_id, category)
);

CREATE INDEX IF NOT EXISTS idx_slate_council_category ON slate(council_id, category);

-- Slate members
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    slate_id TEXT NOT NULL REFERENCES slate(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    position TEXT NOT NULL CHECK (position IN ('principal', 'alternate'))
);

CREATE INDEX IF NOT EXISTS idx_candidate_slate_id ON candidate(slate_id);

-- Ballots (temporary; purged after the election closes)
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    council_id TEXT NOT NULL REFERENCES council_type(id) ON DELETE CASCADE,
    slate_id TEXT NOT NULL REFERENCES slate(id) ON DELETE CASCADE,
    cast_ip TEXT,
    cast_at TIMESTAMP NOT NULL DEFAULT NOW(),
    tallied BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (voter_id, council_id)
);

CREATE INDEX IF NOT EXISTS idx_ballot_voter_id ON ballot(voter_id);
CREATE INDEX IF NOT EXISTS idx_ballot_untallied ON ballot(tallied) WHERE tallied = FALSE;

-- De-identified running counts; the only result artifact kept long-term
CREATE TABLE IF NOT EXISTS tally_record (
    slate_id TEXT NOT NULL REFERENCES slate(id) ON DELETE CASCADE,
    council_id TEXT NOT NULL REFERENCES council_type(id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (slate_id, council_id, category)
);

-- Singleton participation snapshot, recomputed on demand
CREATE TABLE IF NOT EXISTS vote_stats (
    id INTEGER PRIMARY KEY,
    total_voters INTEGER NOT NULL DEFAULT 0,
    total_voted INTEGER NOT NULL DEFAULT 0,
    voted_students INTEGER NOT NULL DEFAULT 0,
    voted_teachers INTEGER NOT NULL DEFAULT 0,
    voted_graduates INTEGER NOT NULL DEFAULT 0,
    voted_administrative INTEGER NOT NULL DEFAULT 0,
    participation NUMERIC(5,2) NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`
