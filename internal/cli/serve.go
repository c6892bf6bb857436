package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codelens-ai/codelens/internal/config"
	"github.com/codelens-ai/codelens/internal/providers"
	"github.com/codelens-ai/codelens/internal/server"
	"github.com/codelens-ai/codelens/internal/usage"
)

var (
	flagAddr    string
	flagLogJSON bool
)

func setupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !flagLogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local analysis web UI",
	Long:  "Start an HTTP server hosting the single-page analysis UI and its JSON API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		overrides := buildOverrides()
		if flagAddr != "" {
			overrides["addr"] = flagAddr
		}

		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		// Fail fast on missing credentials rather than on the first request.
		completer, err := providers.New(cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		svc, err := server.New(cfg, completer, usage.NewTracker())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := svc.ListenAndServe(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON instead of console format")
	serveCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (groq, openai, anthropic, gemini, ollama)")
	serveCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	serveCmd.Flags().StringVar(&flagRules, "rules", "", "Rules file path")
	serveCmd.Flags().IntVar(&flagInputBudget, "input-budget", 0, "Input token budget (-1 to disable)")
}
