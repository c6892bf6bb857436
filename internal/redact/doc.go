// Package redact scrubs secrets from code before it leaves the process.
//
// Detection is heuristic: a fixed set of regex patterns covering credential
// assignments, bearer tokens, JWTs, vendor-prefixed API keys, and private
// key blocks. Matches are replaced with a [REDACTED] placeholder. A separate
// path policy blocks whole files (such as .env) from being analyzed at all.
package redact
