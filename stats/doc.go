// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats maintains the cached participation snapshot: registered
// and voted totals, per-category voted counts, and the participation
// percentage. Refresh cost is bounded by registry size, so the dashboard
// calls it on every read; consistency with in-flight casts is eventual.
package stats
