package analyze

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Mode selects which analysis template is used.
type Mode string

const (
	ModeFull        Mode = "full"
	ModeSecurity    Mode = "security"
	ModePerformance Mode = "performance"
)

// Modes returns all supported analysis modes.
func Modes() []Mode {
	return []Mode{ModeFull, ModeSecurity, ModePerformance}
}

// ParseMode validates a mode string. An empty string defaults to full.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeFull, nil
	case ModeFull, ModeSecurity, ModePerformance:
		return Mode(s), nil
	default:
		return "", &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s)}
	}
}

// Generation parameter bounds. Values outside these ranges are clamped.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
	MinMaxTokens       = 100
	MaxMaxTokens       = 2048

	// DefaultInputBudget caps prompt size in estimated tokens, leaving room
	// for the response.
	DefaultInputBudget = 800
)

// SupportedLanguages is the language list offered by the UI. The API accepts
// free-form language hints beyond this set.
var SupportedLanguages = []string{
	"python", "cpp", "java", "javascript", "typescript", "go", "rust",
}

// Request is a single analysis submission. It lives for one round trip and
// is discarded once the result is rendered.
type Request struct {
	Code        string  `json:"code"`
	Language    string  `json:"language"`
	Mode        Mode    `json:"mode"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// Result is the display-only outcome of one analysis.
type Result struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	Language      string    `json:"language"`
	Mode          Mode      `json:"mode"`
	TokenEstimate int       `json:"tokenEstimate"`
	TokensUsed    int       `json:"tokensUsed"`
	DurationMs    int64     `json:"durationMs"`
	Timestamp     time.Time `json:"timestamp"`
}

// ValidationError reports input that was rejected before any remote call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// extLanguages maps file extensions to language hints for uploads.
var extLanguages = map[string]string{
	".py":   "python",
	".cpp":  "cpp",
	".cc":   "cpp",
	".h":    "cpp",
	".java": "java",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".go":   "go",
	".rs":   "rust",
}

// DetectLanguage guesses a language hint from a file name. Returns "" when
// the extension is not recognized.
func DetectLanguage(filename string) string {
	return extLanguages[strings.ToLower(filepath.Ext(filename))]
}
