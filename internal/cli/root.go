package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gitadapter "github.com/commitgpt/commitgpt/internal/adapters/git"
	"github.com/commitgpt/commitgpt/internal/adapters/mock"
	openaiadapter "github.com/commitgpt/commitgpt/internal/adapters/openai"
	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/config"
	"github.com/commitgpt/commitgpt/internal/observability"
	"github.com/commitgpt/commitgpt/internal/ports"
	"github.com/commitgpt/commitgpt/internal/security"
	"github.com/commitgpt/commitgpt/internal/ui"
)

var (
	cfgFile         string
	flagSuggestions int
	flagMaxTokens   int
	flagModel       string
	flagTemperature float32
	flagIgnoreSpace bool
	flagDryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "commitgpt [paths...]",
	Short: "Generate commit messages for your staged changes",
	Long: `commitgpt sends your staged diff to a completion service and lets you
pick, edit or re-roll one of several suggested commit messages before
committing.

Positional paths limit the diff to those files, as with git diff.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/commitgpt/config.toml)")
	rootCmd.PersistentFlags().IntVarP(&flagSuggestions, "suggestions", "s", 0, "how many suggestions to request (1-10)")
	rootCmd.PersistentFlags().IntVarP(&flagMaxTokens, "max-tokens", "t", 0, "token budget per completion")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "completion model to use")
	rootCmd.PersistentFlags().Float32Var(&flagTemperature, "temperature", 0, "sampling temperature (0-2)")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreSpace, "ignore-space", true, "ignore whitespace-only changes in the diff")
	rootCmd.PersistentFlags().BoolVarP(&flagDryRun, "dry-run", "n", false, "show what would be committed without committing")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	if _, cleanup, err := observability.Init(); err == nil {
		defer cleanup()
	}

	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		return ExitCode(err)
	}
	return exitOK
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := buildApp(cfg, args)
	if err != nil {
		return err
	}

	model := ui.New(application, flagDryRun)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	fm, ok := final.(*ui.Model)
	if !ok {
		return fmt.Errorf("terminal UI: unexpected model type")
	}
	switch state, uerr := fm.Outcome(); state {
	case ui.StateCommitted:
		return nil
	case ui.StateFailed:
		if uerr != nil {
			return annotate(uerr, path)
		}
		return fmt.Errorf("suggestion pipeline failed")
	default:
		// Interrupt or quit anywhere before the commit transition.
		return app.ErrCancelled
	}
}

// loadConfig resolves config, applies explicit flag overrides and
// re-validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := cfgFile
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("suggestions") {
		cfg.Suggestions = flagSuggestions
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = flagMaxTokens
	}
	if flags.Changed("model") {
		cfg.Model = flagModel
	}
	if flags.Changed("temperature") {
		cfg.Temperature = flagTemperature
	}
	if flags.Changed("ignore-space") {
		cfg.IgnoreSpace = flagIgnoreSpace
	}

	if err := cfg.Validate(path); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// buildApp wires the pipeline from the resolved configuration.
func buildApp(cfg *config.Config, paths []string) (*app.App, error) {
	completer, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}

	opts := app.Options{
		ContextPrefix: cfg.ContextPrefix,
		Model:         cfg.Model,
		Suggestions:   cfg.Suggestions,
		MaxTokens:     cfg.MaxTokens,
		Temperature:   cfg.Temperature,
		DiffCharLimit: cfg.DiffCharLimit,
		IgnoreSpace:   cfg.IgnoreSpace,
		Paths:         paths,
		Redact:        cfg.Redact,
	}
	policy := app.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BackoffBase: cfg.Retry.BackoffBase,
		BackoffMax:  cfg.Retry.BackoffMax,
	}

	return app.New(
		gitadapter.NewExecutor(),
		completer,
		app.StdSleeper{},
		security.NewRedactor(),
		policy,
		cfg.Timeout(),
		opts,
	), nil
}

func newCompleter(cfg *config.Config) (ports.Completer, error) {
	switch cfg.Provider {
	case "mock":
		return mock.NewClient(), nil
	default:
		return openaiadapter.NewClient(cfg.APIKey, cfg.BaseURL)
	}
}

// annotate enriches kinds that should point the user somewhere concrete.
func annotate(err error, configPath string) error {
	if errors.Is(err, app.ErrUnauthorized) {
		return fmt.Errorf("%w (check api_key in %s)", err, configPath)
	}
	return err
}

// reportError prints one human-readable line per error kind to stderr and
// mirrors it, redacted, into the error log.
func reportError(err error) {
	observability.Logger().Printf("run failed: %s", observability.RedactForLog(err.Error()))

	switch {
	case errors.Is(err, app.ErrCancelled):
		color.New(color.FgHiBlack).Fprintln(os.Stderr, "cancelled, nothing committed")
	case errors.Is(err, app.ErrNoStagedChanges):
		color.New(color.FgYellow).Fprintln(os.Stderr, "there are no staged changes, add them first with git add")
	case errors.Is(err, app.ErrUnauthorized), errors.Is(err, config.ErrInvalid):
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
	case errors.Is(err, app.ErrRateLimited):
		color.New(color.FgRed).Fprintf(os.Stderr, "completion service keeps rate limiting us, giving up: %v\n", err)
	default:
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
	}
}
