// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: request start/completion logging with duration
  - RequireAdmin: X-Admin-Token gate for administrative endpoints
  - CORS: cross-origin support for the voting frontend

# Helpers

  - JSONResponse / ErrorResponse: JSON writers
  - ParseJSONBody: request body decoding
  - GetClientIP: client IP extraction (X-Forwarded-For chain, X-Real-IP,
    RemoteAddr fallback)

GetClientIP feeds the duplicate-IP check in the voting workflow, so the
server must run behind a proxy that sets X-Forwarded-For honestly or
accept direct connections.
*/
package middleware
