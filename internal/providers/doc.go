// Package providers implements the Completer interface for each supported
// hosted model API.
//
// Supported providers: Groq (default), OpenAI, Anthropic (Claude), Google
// (Gemini), and Ollama / LMStudio for local models. Groq, OpenAI, and Ollama
// share the OpenAI chat-completions wire format.
//
// API credentials are read from the environment when a provider is
// constructed; a missing key is reported immediately rather than on first
// use. Calls are strictly one request per analysis: failures, including rate
// limits, are surfaced to the caller as typed errors with no retry loop.
//
// Use [New] to obtain a Completer by provider name and model string.
package providers
