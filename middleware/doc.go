// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms) with
a per-request UUID so the two lines correlate.

# Authentication

RequireAuth validates the Authorization bearer token and makes its claims
available to handlers:

	mux.HandleFunc("POST /elections/{id}/vote",
		middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, handler)))

	claims, ok := middleware.ClaimsFromContext(r.Context())

RequireAdmin additionally requires the admin role; it must be nested inside
RequireAuth.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ParseJSONBody(r, &req)

# CORS

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}
*/
package middleware
