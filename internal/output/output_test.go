package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/codelens-ai/codelens/internal/analyze"
)

func sampleResult() *analyze.Result {
	return &analyze.Result{
		ID:            "abc-123",
		Text:          "No issues found.",
		Provider:      "groq",
		Model:         "llama-3.3-70b-versatile",
		Language:      "python",
		Mode:          analyze.ModeSecurity,
		TokenEstimate: 40,
		TokensUsed:    61,
		DurationMs:    950,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown"} {
		if _, err := GetWriter(format); err != nil {
			t.Errorf("GetWriter(%q) error: %v", format, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"security mode", "python", "llama-3.3-70b-versatile", "No issues found."} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var decoded analyze.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Text != "No issues found." || decoded.Mode != analyze.ModeSecurity {
		t.Errorf("round-tripped result = %+v", decoded)
	}
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "# Code Analysis (security)") {
		t.Errorf("markdown output should start with a heading:\n%s", out)
	}
	if !strings.Contains(out, "No issues found.") {
		t.Error("markdown output missing result text")
	}
}
