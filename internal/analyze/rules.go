package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rules is an optional pack of extra analysis instructions loaded from a
// JSON file.
type Rules struct {
	Focus  []string        `json:"focus,omitempty"`
	Checks []RequiredCheck `json:"checks,omitempty"`
}

// RequiredCheck is a check the model must always evaluate.
type RequiredCheck struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// LoadRules loads a rules file from disk. Returns nil Rules and nil error if
// path is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return &rules, nil
}

// PromptSection returns the prompt instructions derived from the rules.
// Safe to call on a nil receiver.
func (r *Rules) PromptSection() string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	if len(r.Focus) > 0 {
		fmt.Fprintf(&b, "\nFocus areas: %s. Prioritize observations in these areas.\n",
			strings.Join(r.Focus, ", "))
	}

	if len(r.Checks) > 0 {
		b.WriteString("\nRequired checks (always evaluate these):\n")
		for _, c := range r.Checks {
			fmt.Fprintf(&b, "- [%s] %s\n", c.ID, c.Text)
		}
	}

	return b.String()
}
