// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the ballot-casting workflow.

# Casting

Workflow.CastBallots runs the whole attempt inside one transaction with
the voter row locked (SELECT ... FOR UPDATE):

 1. voter exists and has not voted (AlreadyVotedError)
 2. an in-person-only voter cannot cast with a client IP
    (ModeViolationError)
 3. a non-nil client IP must not have produced any other voter's
    completed vote (DuplicateIPError, audit-logged with the prior
    voters); nil IP — jury-witnessed in-person casting — is exempt
 4. every selection must resolve to an active slate of the voter's
    category in the named active council (InvalidSelectionError)
 5. no ballot may already exist for (voter, council)
    (DuplicateBallotError; the unique constraint is the backstop)

On success each selection yields a ballot row, an atomic tally
increment, and the tallied mark; then the voter is flagged has-voted
with the derived mode (virtual when an IP is present, in-person when
absent). Any error rolls everything back.

# Error kinds

Rich failures are typed (AlreadyVotedError, ModeViolationError,
DuplicateIPError, InvalidSelectionError, DuplicateBallotError) so the
HTTP layer can map them with errors.As; ErrVoterNotFound and
ErrNoSelection are sentinels.

The workflow never retries: a transient store failure surfaces to the
caller with the transaction rolled back.
*/
package voting
