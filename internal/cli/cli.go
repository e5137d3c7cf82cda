// Package cli wires configuration, logging, and the run pipeline behind a
// single no-argument command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spartaxi/matchday/internal/config"
	"github.com/spartaxi/matchday/internal/contacts"
	"github.com/spartaxi/matchday/internal/gmail"
	"github.com/spartaxi/matchday/internal/invite"
	"github.com/spartaxi/matchday/internal/logger"
	"github.com/spartaxi/matchday/internal/ollama"
	"github.com/spartaxi/matchday/internal/runner"
	"github.com/spartaxi/matchday/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDryRun  bool
	flagUseLLM  bool
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchday",
		Short: "Draft invitation emails for upcoming Sunday home matches",
		Long: `Checks the league fixtures page for upcoming Sunday home matches,
resolves the opposing captain's contact emails from the local contacts
file, and saves a templated invitation as a Gmail draft for review.
Nothing is ever sent automatically.`,
		RunE:         run,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", "matchday.yaml", "Path to the YAML configuration file")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print invitations instead of creating Gmail drafts")
	cmd.Flags().BoolVar(&flagUseLLM, "use-llm", false, "Fall back to the local LLM extractor when the contacts file has no match")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	level := logger.Level(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stdout))

	directory, err := contacts.LoadFile(cfg.ContactsFile)
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}

	var fallback contacts.Directory
	if flagUseLLM {
		client, err := ollama.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout())
		if err != nil {
			return fmt.Errorf("initializing LLM client: %w", err)
		}
		if err := client.CheckModel(); err != nil {
			// The fallback is best-effort; a missing model disables it
			logger.Warn("LLM fallback unavailable", logger.Fields{"reason": err.Error()})
		} else {
			fallback = contacts.NewLLMDirectory(client, cfg.ContactsFile)
		}
	}

	var drafter runner.InvitationDrafter
	if flagDryRun {
		drafter = invite.NewDryRunDrafter(cfg)
	} else {
		gc, err := gmail.NewClient(cmd.Context(), cfg.CredentialsFile, cfg.TokenFile)
		if err != nil {
			return fmt.Errorf("initializing Gmail client: %w", err)
		}
		drafter = invite.NewDrafter(cfg, gc)
	}

	r := runner.New(scraper.New(cfg), directory, fallback, drafter, cfg.AwayWeekday())
	sum, err := r.Run()
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d candidate games: %d drafted, %d skipped, %d failed\n",
		sum.Candidates, sum.Drafted, sum.Skipped, sum.Failed)
	return nil
}

// Execute runs the root command and maps the result to an exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		return ExitError
	}
	return ExitSuccess
}
