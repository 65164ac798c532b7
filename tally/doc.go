// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally maintains the de-identified vote counts.

Tally records are the durable election result: one count per
(slate, council, category) key, incremented atomically as ballots are
cast and kept after the ballots themselves are purged. A count can never
be traced back to a voter.

# Operations

  - RegisterVote: get-or-create + increment via a single
    INSERT ... ON CONFLICT upsert; safe under concurrent increments and
    callable inside the casting transaction
  - Aggregator.ResultsForCouncil: counts ordered by votes desc, slate
    number asc, with percentages of the council total
  - Aggregator.ReconcilePending: crash-recovery backfill of untallied
    ballots; idempotent once everything is marked
  - Aggregator.PurgeBallots: reconcile then delete all ballots — the
    one-way end-of-election anonymization step
*/
package tally
