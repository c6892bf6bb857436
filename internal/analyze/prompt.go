package analyze

import (
	"fmt"
	"strings"
)

const fullSystemPrompt = `You are an expert code reviewer. Analyze the code the user provides and report:
1. Any syntax errors or bugs
2. Potential improvements
3. A clear explanation of what the code does
4. Suggested fixes
5. Performance considerations

Be concise and actionable. Use markdown headings for each section.`

const securitySystemPrompt = `You are an expert application security reviewer. Analyze the code the user provides for security vulnerabilities and report:
1. Potential security risks
2. Common vulnerabilities present in the code
3. Security best practices the code should follow
4. Recommended security improvements

Be concise and actionable. Use markdown headings for each section.`

const performanceSystemPrompt = `You are an expert performance engineer. Analyze the code the user provides for performance and report:
1. Performance bottlenecks
2. Optimization opportunities
3. Memory usage considerations
4. Recommended performance improvements

Be concise and actionable. Use markdown headings for each section.`

// SystemPrompt returns the fixed template for an analysis mode.
func SystemPrompt(mode Mode) string {
	switch mode {
	case ModeSecurity:
		return securitySystemPrompt
	case ModePerformance:
		return performanceSystemPrompt
	default:
		return fullSystemPrompt
	}
}

// BuildUserPrompt constructs the user prompt. The code is embedded verbatim,
// so the full input always appears as a contiguous substring of the result.
func BuildUserPrompt(code, language string, rules *Rules) string {
	var b strings.Builder

	if language != "" {
		fmt.Fprintf(&b, "Analyze the following %s code.\n", language)
	} else {
		b.WriteString("Analyze the following code.\n")
	}

	if rulesSection := rules.PromptSection(); rulesSection != "" {
		b.WriteString(rulesSection)
	}

	b.WriteString("\n--- BEGIN CODE ---\n")
	b.WriteString(code)
	b.WriteString("\n--- END CODE ---\n")

	return b.String()
}
