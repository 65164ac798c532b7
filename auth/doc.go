// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and admin token validation.

GenerateID produces random hex identifiers for provisioning councils,
slates, and voters:

	id, err := auth.GenerateID(16) // 32 hex chars

ValidateAdminToken gates the administrative surface (jury confirmation,
results, reconcile/purge/override) with a constant-time comparison
against the configured ADMIN_TOKEN:

	if err := auth.ValidateAdminToken(r.Header.Get("X-Admin-Token"), cfg.AdminToken); err != nil {
		// 401
	}

Voter authentication itself (document lookup, sessions) is handled by an
external collaborator and is deliberately absent here.
*/
package auth
