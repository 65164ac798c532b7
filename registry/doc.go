// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry implements the voter-side electoral rules.

  - Lookup / ValidateEntry: resolve a document number to a voter and
    check eligibility (exists, has not voted). Documents are digits only.
  - ConfirmInPerson: jury-witnessed physical vote — marks the voter
    voted with in-person mode, null IP, and no ballot rows.
  - Override: administrative reversal — decrements the tally for the
    voter's tallied ballots, deletes them, and resets the voter.

Once a voter's has-voted flag is true it stays true for every path
except Override. Voter identity fields (name, document, category) are
owned by the external provisioning process and never written here.
*/
package registry
