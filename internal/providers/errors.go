package providers

import "errors"

type authError struct {
	message string
}

func (e *authError) Error() string {
	return "authentication error: " + e.message
}

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited by provider" }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRateLimited checks if an error is a provider rate-limit rejection.
func IsRateLimited(err error) bool {
	var rl *rateLimitError
	return errors.As(err, &rl)
}
