package output

import (
	"io"

	"github.com/codelens-ai/codelens/internal/analyze"
)

// MarkdownWriter outputs the result as a markdown document.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *analyze.Result) error {
	ew := &errWriter{w: w}

	ew.printf("# Code Analysis (%s)\n\n", result.Mode)
	if result.Language != "" {
		ew.printf("- **Language:** %s\n", result.Language)
	}
	ew.printf("- **Model:** %s (%s)\n", result.Model, result.Provider)
	ew.printf("- **Tokens:** ~%d estimated, %d used\n", result.TokenEstimate, result.TokensUsed)
	ew.printf("- **Generated:** %s\n\n", result.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	ew.println(result.Text)

	return ew.err
}
