// Package api is the HTTP boundary between the client and the Leish backend.
//
// # Overview
//
// The package provides:
//  1. A Client with typed auth endpoints (Login, Signup, Logout,
//     CurrentUser, RefreshToken) and generic verb helpers
//     (Get/Post/Put/Delete) for everything else.
//  2. A middleware chain composed at construction time: every request gets
//     an X-Request-Id, picks up the persisted bearer token at call time, and
//     every 401 response clears the persisted credentials before the error
//     reaches the caller.
//  3. A single normalized error shape, *Error, with a closed Kind set
//     (network, http, storage, validation). Match it with errors.As.
//
// # Error Handling
//
// Transport failures (timeouts, refused connections, undecodable bodies)
// normalize to KindNetwork with status 500 and a generic message. HTTP error
// responses normalize to KindHTTP carrying the server's status, message and
// optional code.
//
// Concurrency & Contexts
//
// Client is safe for concurrent use. All operations accept context.Context
// and honor cancellation; requests are additionally bounded by the
// construction-time timeout.
package api
