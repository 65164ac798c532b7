// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router assembles the HTTP routes for the voting service.
// It constructs every domain service and handler from the shared
// database handle and configuration, so nothing below it touches
// package-level state. Public routes cover validation, slate listing,
// and casting; jury, results, statistics, and repair routes sit behind
// the admin token.
package router
