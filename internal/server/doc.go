// Package server exposes codelens over HTTP: a JSON API plus an embedded
// single-page web UI.
//
// The Service owns the session usage tracker and one provider client; each
// analysis request is handled synchronously on its own handler goroutine
// with no background work or queueing. Validation failures map to 400,
// provider auth failures to 502, and provider rate limits to 429, always
// carrying the underlying message so the UI can show it verbatim.
package server
