// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog provides read-only access to the candidate slates,
// grouped by council, for one voter category. It backs the ballot-card
// listing and never mutates election state.
package catalog
