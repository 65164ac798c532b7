// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the voting service.

Handlers are grouped by surface:

  - VotingHandler: entry validation, ballot casting, and jury
    confirmation of in-person votes.
  - ResultsHandler: slate listing, per-council tallies, and the
    participation snapshot.
  - AdminHandler: tally reconciliation, end-of-election ballot purge,
    and the vote override.

Each handler struct receives its collaborators at construction; nothing
reaches for package-level state. Domain errors from the voting and
registry packages are translated to HTTP statuses in one place
(writeVotingError), so every surface reports the same condition the
same way.
*/
package handlers
