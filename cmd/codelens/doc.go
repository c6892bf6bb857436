// Codelens analyzes code snippets with LLM providers, either as a one-shot
// CLI or through a local single-page web UI.
//
// It sends pasted or uploaded code to a hosted or local model, returns a
// readable review in a chosen analysis mode, and keeps per-session usage
// statistics.
//
// Usage:
//
//	codelens serve                        # start the web UI on :8080
//	codelens analyze --file main.go       # analyze a file
//	cat snippet.py | codelens analyze --lang python --mode security
//	codelens models list                  # list known providers and models
//	codelens models doctor                # validate provider credentials
//	codelens config init                  # write a default config file
//
// See https://github.com/codelens-ai/codelens for full documentation.
package main
