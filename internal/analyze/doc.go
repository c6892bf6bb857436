// Package analyze contains the core types and engine for LLM-based code
// analysis.
//
// A Request carries the pasted or uploaded code, a language hint, and one of
// three analysis modes (full, security, performance). The engine validates
// the request, scrubs secrets, assembles a mode-specific prompt with the
// code embedded verbatim, enforces the input token budget, and issues one
// synchronous call to a Completer. The Result it returns is ephemeral and
// display-only; nothing is persisted, cached, or retried.
//
// Rules packs (rules.go) let callers append focus areas and required checks
// to the prompt without editing the built-in templates.
package analyze
