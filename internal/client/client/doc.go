// Package client contains the client-side building blocks for talking to the
// corpchat API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Register,
//     Login, Logout, ListMessages, SendMessage, GetProfile, UpdateProfile.
//  2. A REST implementation (see HTTPClient). Every request goes through a
//     single RoundTripper (authTransport) that asks a TokenSource for the
//     current credential and, when there is one, sets
//     "Authorization: Token <credential>". Nothing else about the request is
//     touched and the credential is never cached.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses become *APIError. A 401 unwraps to ErrUnauthorized; a
// request that got no response at all wraps ErrUnavailable. Match with
// errors.Is / errors.As.
//
// No retries are performed and no client-side timeout is applied beyond what
// the caller's context carries.
package client
