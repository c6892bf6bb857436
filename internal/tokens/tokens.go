package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// CharsPerToken is the heuristic ratio used by Estimate.
const CharsPerToken = 4

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
	codecErr  error
)

// Estimate returns a rough token estimate for text. It is deterministic:
// the same input length always produces the same estimate.
func Estimate(text string) int {
	return len(text) / CharsPerToken
}

// Count returns the exact cl100k_base token count for text. If the encoding
// cannot be loaded it falls back to Estimate.
func Count(text string) int {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codecErr != nil {
		return Estimate(text)
	}
	n, err := codec.Count(text)
	if err != nil {
		return Estimate(text)
	}
	return n
}
