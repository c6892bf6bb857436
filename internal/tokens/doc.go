// Package tokens estimates tokenization cost without calling a model.
//
// Estimate is the fast length heuristic (~4 characters per token) used for
// input budgeting and live UI feedback; it is a pure function of input
// length. Count is an exact BPE count using the cl100k_base encoding and is
// used for session accounting when the encoding is available.
package tokens
