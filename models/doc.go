// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and request/response shapes for
the electoral API.

# Domain Types

  - Voter: registry entry keyed by document number, with category,
    voting mode, and has-voted state
  - CouncilType: a governance body being elected for
  - Slate: a candidate ticket scoped to one council and one voter category
  - Candidate: a principal or alternate member of a slate
  - Ballot: one voter's choice for one council, kept only until purged
  - TallyResult: de-identified running count for one slate
  - VoteStats: derived participation snapshot

# Enumerations

Voter categories: student, teacher, graduate, administrative.

Voting modes form a tagged state set once per voter:

	unset -> in_person  (jury confirmation, or ballot cast without IP)
	unset -> virtual    (ballot cast with a client IP)

A voter provisioned or confirmed as in_person can never cast virtually.
*/
package models
