// Package cli wires together the Cobra command tree for the codelens binary.
//
// It defines the root command and all subcommands (serve, analyze, config,
// models, version), binds flags, reads configuration, invokes the analysis
// engine, and returns deterministic exit codes for scripting.
package cli
