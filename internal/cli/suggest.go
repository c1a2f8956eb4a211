package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var flagJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [paths...]",
	Short: "Print suggestions without the interactive UI",
	Long: `Generate candidate commit messages for the staged changes and print
them, one numbered block per candidate. Useful for scripting; nothing is
committed.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&flagJSON, "json", false, "emit candidates as a JSON array")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := buildApp(cfg, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	run, err := application.Suggest.Prepare(ctx)
	if err != nil {
		return annotate(err, path)
	}
	if run.Diff.Truncated {
		color.New(color.FgYellow).Fprintln(os.Stderr, "warning: staged diff was truncated to fit the prompt budget")
	}
	if run.SecretsExposed {
		color.New(color.FgYellow).Fprintln(os.Stderr, "warning: diff contains credential-looking content and redaction is off")
	}

	candidates, err := application.Suggest.Suggest(ctx, run)
	if err != nil {
		return annotate(err, path)
	}

	if flagJSON {
		out := make([]string, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, c.String())
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	}

	for i, c := range candidates {
		fmt.Fprintf(os.Stdout, "%d) %s\n", i+1, c.String())
		if i < len(candidates)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
	return nil
}
