package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codelens-ai/codelens/internal/analyze"
	"github.com/codelens-ai/codelens/internal/config"
	"github.com/codelens-ai/codelens/internal/output"
	"github.com/codelens-ai/codelens/internal/providers"
)

// Shared analyze flags
var (
	flagFile        string
	flagLang        string
	flagMode        string
	flagTemperature float64
	flagMaxTokens   int
	flagInputBudget int
	flagProvider    string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagRules       string
	flagNoRedact    bool
)

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFile, "file", "", "Read code from a file instead of stdin")
	cmd.Flags().StringVar(&flagLang, "lang", "", "Language of the code (python, cpp, java, javascript, typescript, go, rust)")
	cmd.Flags().StringVar(&flagMode, "mode", "", "Analysis mode (full, security, performance)")
	cmd.Flags().Float64Var(&flagTemperature, "temperature", 0, "Sampling temperature (0-1)")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum response tokens (100-2048)")
	cmd.Flags().IntVar(&flagInputBudget, "input-budget", 0, "Input token budget (-1 to disable)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (groq, openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rules file path")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagTemperature > 0 {
		m["temperature"] = fmt.Sprintf("%g", flagTemperature)
	}
	if flagMaxTokens > 0 {
		m["maxTokens"] = fmt.Sprintf("%d", flagMaxTokens)
	}
	if flagInputBudget != 0 {
		m["inputBudget"] = fmt.Sprintf("%d", flagInputBudget)
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	return m
}

// readCode returns the code to analyze from --file or stdin.
func readCode() (string, error) {
	if flagFile != "" {
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", flagFile, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cfg config.Config) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	code, err := readCode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	language := flagLang
	if language == "" && flagFile != "" {
		language = analyze.DetectLanguage(flagFile)
	}

	completer, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitAuthError
		return
	}

	rules, err := analyze.LoadRules(cfg.RulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := analyze.Run(ctx, completer, analyze.Request{
		Code:        code,
		Language:    language,
		Mode:        analyze.Mode(flagMode),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}, analyze.Options{
		InputBudget:   cfg.InputBudget,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		Rules:         rules,
		Model:         cfg.Model,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ve *analyze.ValidationError
		switch {
		case errors.As(err, &ve):
			exitCode = ExitUsageError
		case providers.IsAuthError(err):
			exitCode = ExitAuthError
		default:
			exitCode = ExitRuntimeError
		}
		return
	}

	if err := output.WriteResult(result, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a code snippet",
	Long:  "Analyze code from stdin or a file with a single LLM call. The result is written to stdout or --out.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runAnalyze(cfg)
		return nil
	},
}

func init() {
	addAnalyzeFlags(analyzeCmd)
}
