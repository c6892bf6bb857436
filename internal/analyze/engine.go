package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codelens-ai/codelens/internal/providers"
	"github.com/codelens-ai/codelens/internal/redact"
	"github.com/codelens-ai/codelens/internal/tokens"
)

// Options controls engine behavior for one run.
type Options struct {
	// InputBudget caps the prompt size in estimated tokens. Zero means
	// DefaultInputBudget; negative disables the gate.
	InputBudget int
	// RedactSecrets scrubs credential-looking strings from the code before
	// it is sent to the provider.
	RedactSecrets bool
	// Rules optionally appends extra instructions to the prompt.
	Rules *Rules
	// Model is the model identifier recorded in the result.
	Model string
}

// Run executes one analysis: validate, build the prompt, make a single
// synchronous provider call, and assemble the result. Validation failures
// are returned as *ValidationError before any network traffic happens.
func Run(ctx context.Context, c providers.Completer, req Request, opts Options) (*Result, error) {
	start := time.Now()

	if err := normalize(&req); err != nil {
		return nil, err
	}

	code := req.Code
	if opts.RedactSecrets {
		code = redact.Secrets(code)
	}

	system := SystemPrompt(req.Mode)
	user := BuildUserPrompt(code, req.Language, opts.Rules)

	estimate := tokens.Estimate(system + user)
	budget := opts.InputBudget
	if budget == 0 {
		budget = DefaultInputBudget
	}
	if budget > 0 && estimate > budget {
		return nil, &ValidationError{
			Field:  "code",
			Reason: fmt.Sprintf("input too long for analysis: ~%d tokens exceeds the %d token budget", estimate, budget),
		}
	}

	resp, err := c.Complete(ctx, providers.CompletionRequest{
		SystemPrompt: system,
		UserPrompt:   user,
		MaxTokens:    req.MaxTokens,
		Temperature:  req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", c.Name(), err)
	}

	used := resp.TokensUsed
	if used == 0 {
		// Some endpoints omit usage; fall back to counting locally.
		used = estimate + tokens.Count(resp.Content)
	}

	return &Result{
		ID:            uuid.NewString(),
		Text:          strings.TrimSpace(resp.Content),
		Provider:      c.Name(),
		Model:         opts.Model,
		Language:      req.Language,
		Mode:          req.Mode,
		TokenEstimate: estimate,
		TokensUsed:    used,
		DurationMs:    time.Since(start).Milliseconds(),
		Timestamp:     time.Now().UTC(),
	}, nil
}

// normalize validates the request in place, applying defaults and clamping
// generation parameters to their allowed ranges.
func normalize(req *Request) error {
	if strings.TrimSpace(req.Code) == "" {
		return &ValidationError{Field: "code", Reason: "no code provided"}
	}

	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return err
	}
	req.Mode = mode

	req.Language = strings.ToLower(strings.TrimSpace(req.Language))

	switch {
	case req.Temperature == 0:
		req.Temperature = DefaultTemperature
	case req.Temperature < 0:
		req.Temperature = 0
	case req.Temperature > 1:
		req.Temperature = 1
	}

	switch {
	case req.MaxTokens == 0:
		req.MaxTokens = DefaultMaxTokens
	case req.MaxTokens < MinMaxTokens:
		req.MaxTokens = MinMaxTokens
	case req.MaxTokens > MaxMaxTokens:
		req.MaxTokens = MaxMaxTokens
	}

	return nil
}
