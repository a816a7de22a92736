// File: cmd/fix.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/relic-cli/internal/engine"
	"github.com/xkilldash9x/relic-cli/internal/observability"
	"github.com/xkilldash9x/relic-cli/internal/rewrite"
	"github.com/xkilldash9x/relic-cli/internal/scoring"
)

// newFixCmd creates and configures the `fix` command.
func newFixCmd() *cobra.Command {
	fixCmd := &cobra.Command{
		Use:   "fix [file]",
		Short: "Rewrites deprecated API usages to their modern equivalents",
		Long: `Scans a file against a platform profile and applies every rule-supplied
rewrite to the offending call sites. The rewritten text goes to stdout by
default; use -w to update the file in place or -o to write elsewhere.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			profileID, _ := cmd.Flags().GetString("profile")
			inPlace, _ := cmd.Flags().GetBool("write")
			output, _ := cmd.Flags().GetString("output")

			target := "-"
			if len(args) == 1 {
				target = args[0]
			}
			if inPlace && target == "-" {
				return fmt.Errorf("-w requires a file argument")
			}
			if inPlace && output != "" {
				return fmt.Errorf("-w and -o are mutually exclusive")
			}

			profile, err := resolveProfile(profileID)
			if err != nil {
				return err
			}

			code, label, err := readTarget(target)
			if err != nil {
				return err
			}

			eng := engine.New(profile, scoring.PolicyFromConfig(appConfig.Scoring), logger).WithTarget(label)
			rep, err := eng.Analyze(ctx, code, "")
			if err != nil {
				return err
			}

			if len(rep.Findings) == 0 {
				fmt.Fprintln(os.Stderr, "Nothing to fix: no issues detected.")
				return writeFixed(code, target, inPlace, output)
			}

			result, err := rewrite.ApplyAllFixes(code, eng.Fixes(rep.Findings))
			if errors.Is(err, rewrite.ErrNoApplicableFixes) {
				fmt.Fprintf(os.Stderr, "Found %d issue(s), but none carry an automatic fix.\n", len(rep.Findings))
				return writeFixed(code, target, inPlace, output)
			}
			if err != nil {
				return err
			}

			logger.Info("Applied fixes",
				zap.String("target", label),
				zap.Int("applied", result.Applied),
				zap.Int("findings", len(rep.Findings)),
			)

			fmt.Fprintf(os.Stderr, "Applied %d fix(es):\n", result.Applied)
			for i := range result.OriginalHighlights {
				fmt.Fprintf(os.Stderr, "  %q -> %q\n", result.OriginalHighlights[i], result.RewrittenHighlights[i])
			}

			return writeFixed(result.RewrittenText, target, inPlace, output)
		},
	}

	fixCmd.Flags().StringP("profile", "p", "", "Platform profile id (see 'relic profiles'). Defaults to the first registered profile.")
	fixCmd.Flags().BoolP("write", "w", false, "Rewrite the file in place instead of printing to stdout.")
	fixCmd.Flags().StringP("output", "o", "", "Write the rewritten text to this path.")

	return fixCmd
}

// writeFixed sends the rewritten text to its destination. Diagnostics go to
// stderr, so stdout stays clean for piping.
func writeFixed(text, target string, inPlace bool, output string) error {
	switch {
	case inPlace:
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", target, err)
		}
		if err := os.WriteFile(target, []byte(text), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		return nil
	case output != "":
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		return nil
	default:
		_, err := fmt.Print(text)
		return err
	}
}
