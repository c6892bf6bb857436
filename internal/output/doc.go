// Package output renders analysis results for the one-shot CLI.
//
// Three formats are supported: text (human-readable, default), json
// (machine-readable, stable field names), and markdown (for pasting into
// issues or docs). The web UI renders results itself and does not go
// through this package.
package output
