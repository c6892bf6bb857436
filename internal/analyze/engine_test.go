package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/codelens-ai/codelens/internal/providers"
)

// stubCompleter records calls and returns a canned response.
type stubCompleter struct {
	calls    int
	lastReq  providers.CompletionRequest
	response providers.CompletionResponse
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, req providers.CompletionRequest) (providers.CompletionResponse, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

func (s *stubCompleter) Name() string { return "stub" }

func TestRun_SecurityScenario(t *testing.T) {
	stub := &stubCompleter{
		response: providers.CompletionResponse{Content: "No issues found.", TokensUsed: 21},
	}

	req := Request{Code: "print('hi')", Language: "python", Mode: ModeSecurity}
	result, err := Run(context.Background(), stub, req, Options{Model: "llama-3.3-70b-versatile"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stub.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", stub.calls)
	}
	if !strings.Contains(stub.lastReq.UserPrompt, "print('hi')") {
		t.Error("user prompt should contain the literal code")
	}
	if !strings.Contains(stub.lastReq.SystemPrompt, "security vulnerabilities") {
		t.Error("system prompt should be the security template")
	}
	if result.Text != "No issues found." {
		t.Errorf("Text = %q, want the provider response verbatim", result.Text)
	}
	if result.TokensUsed != 21 {
		t.Errorf("TokensUsed = %d, want 21", result.TokensUsed)
	}
	if result.Model != "llama-3.3-70b-versatile" || result.Provider != "stub" {
		t.Errorf("result attribution = %s/%s", result.Provider, result.Model)
	}
	if result.ID == "" {
		t.Error("result should have an ID")
	}
	if result.DurationMs < 0 {
		t.Errorf("DurationMs = %d", result.DurationMs)
	}
}

func TestRun_EmptyCode(t *testing.T) {
	stub := &stubCompleter{}

	for _, code := range []string{"", "   ", "\n\t\n"} {
		_, err := Run(context.Background(), stub, Request{Code: code}, Options{})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Run(%q) error = %v, want ValidationError", code, err)
		}
	}
	if stub.calls != 0 {
		t.Errorf("provider calls = %d, want 0 for empty input", stub.calls)
	}
}

func TestRun_UnknownMode(t *testing.T) {
	stub := &stubCompleter{}
	_, err := Run(context.Background(), stub, Request{Code: "x", Mode: "lint"}, Options{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if stub.calls != 0 {
		t.Error("unknown mode must not reach the provider")
	}
}

func TestRun_InputBudget(t *testing.T) {
	stub := &stubCompleter{}
	big := strings.Repeat("x", 10000)

	_, err := Run(context.Background(), stub, Request{Code: big}, Options{InputBudget: 800})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError for oversized input", err)
	}
	if stub.calls != 0 {
		t.Error("oversized input must not reach the provider")
	}

	// A negative budget disables the gate.
	stub2 := &stubCompleter{response: providers.CompletionResponse{Content: "ok"}}
	if _, err := Run(context.Background(), stub2, Request{Code: big}, Options{InputBudget: -1}); err != nil {
		t.Fatalf("Run with disabled budget: %v", err)
	}
}

func TestRun_ProviderError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("connection refused")}
	_, err := Run(context.Background(), stub, Request{Code: "x := 1"}, Options{})
	if err == nil {
		t.Fatal("expected provider error to surface")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("error %q should carry the provider message", err)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Error("transport failure must not be a ValidationError")
	}
}

func TestRun_RedactsSecrets(t *testing.T) {
	stub := &stubCompleter{response: providers.CompletionResponse{Content: "ok"}}
	code := `password = "hunter2-hunter2"` + "\nprint('hi')\n"

	_, err := Run(context.Background(), stub, Request{Code: code}, Options{RedactSecrets: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if strings.Contains(stub.lastReq.UserPrompt, "hunter2-hunter2") {
		t.Error("secret value leaked into the prompt")
	}
	if !strings.Contains(stub.lastReq.UserPrompt, "print('hi')") {
		t.Error("non-secret code should survive redaction")
	}
}

func TestNormalize_Clamps(t *testing.T) {
	tests := []struct {
		name     string
		in       Request
		wantTemp float64
		wantMax  int
	}{
		{"defaults", Request{Code: "x"}, DefaultTemperature, DefaultMaxTokens},
		{"clamp high", Request{Code: "x", Temperature: 3.5, MaxTokens: 9000}, 1, MaxMaxTokens},
		{"clamp low", Request{Code: "x", Temperature: -1, MaxTokens: 5}, 0, MinMaxTokens},
		{"in range", Request{Code: "x", Temperature: 0.4, MaxTokens: 512}, 0.4, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			if err := normalize(&req); err != nil {
				t.Fatalf("normalize error: %v", err)
			}
			if req.Temperature != tt.wantTemp {
				t.Errorf("Temperature = %v, want %v", req.Temperature, tt.wantTemp)
			}
			if req.MaxTokens != tt.wantMax {
				t.Errorf("MaxTokens = %d, want %d", req.MaxTokens, tt.wantMax)
			}
			if req.Mode != ModeFull {
				t.Errorf("Mode = %q, want default full", req.Mode)
			}
		})
	}
}
