package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// Groq implements the Completer interface for Groq's hosted API, which
// speaks the OpenAI chat-completions wire format.
type Groq struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroq creates a new Groq provider.
func NewGroq(model string) (*Groq, error) {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}
	baseURL := os.Getenv("CODELENS_GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGroqURL
	}
	return &Groq{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	return completeChat(ctx, g.client, g.baseURL, g.apiKey, g.model, req)
}
