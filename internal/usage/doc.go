// Package usage tracks per-session analysis statistics.
//
// The Tracker is explicit state owned by the caller rather than a process
// global, so it can be constructed fresh in tests and passed into whichever
// surface (HTTP service or CLI) needs it. Nothing is persisted; restarting
// the process starts a new session.
package usage
