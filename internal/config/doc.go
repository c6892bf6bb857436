// Package config manages codelens configuration.
//
// Effective configuration is built by merging, in order: compiled defaults,
// the JSON config file in the platform config directory, CODELENS_*
// environment variables, and CLI flag overrides. API credentials are not
// part of the config file; providers read them from the environment
// directly.
package config
