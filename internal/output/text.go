package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/codelens-ai/codelens/internal/analyze"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *analyze.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Codelens Analysis (%s mode)\n", result.Mode)
	if result.Language != "" {
		ew.printf("Language: %s\n", result.Language)
	}
	ew.printf("Model: %s (%s)\n", result.Model, result.Provider)
	ew.printf("Tokens: ~%d in, %d used | %d ms\n",
		result.TokenEstimate, result.TokensUsed, result.DurationMs)
	ew.println(strings.Repeat("─", 60))
	ew.println(result.Text)

	return ew.err
}

// errWriter sticks on the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}
