// File: cmd/scan.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/relic-cli/api/schemas"
	"github.com/xkilldash9x/relic-cli/internal/analyzer"
	"github.com/xkilldash9x/relic-cli/internal/config"
	"github.com/xkilldash9x/relic-cli/internal/deps"
	"github.com/xkilldash9x/relic-cli/internal/engine"
	"github.com/xkilldash9x/relic-cli/internal/llmclient"
	"github.com/xkilldash9x/relic-cli/internal/observability"
	"github.com/xkilldash9x/relic-cli/internal/reporting"
	"github.com/xkilldash9x/relic-cli/internal/rules"
	"github.com/xkilldash9x/relic-cli/internal/scoring"
)

// scanConcurrency caps how many files are analyzed in parallel.
const scanConcurrency = 8

// newScanCmd creates and configures the `scan` command.
func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scans source files for deprecated API usage",
		Long: `Scans one or more source files against a platform profile and reports
every deprecated or removed API usage found. Reads from stdin when no file
is given or when the file argument is "-".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := appConfig

			cfg.Scan.Targets = args
			if len(cfg.Scan.Targets) == 0 {
				cfg.Scan.Targets = []string{"-"}
			}
			cfg.Scan.Profile, _ = cmd.Flags().GetString("profile")
			cfg.Scan.Format, _ = cmd.Flags().GetString("format")
			cfg.Scan.Output, _ = cmd.Flags().GetString("output")
			cfg.Scan.UseAI, _ = cmd.Flags().GetBool("ai")
			cfg.Scan.ContextHint, _ = cmd.Flags().GetString("context")
			cfg.Scan.Manifest, _ = cmd.Flags().GetString("manifest")

			profile, err := resolveProfile(cfg.Scan.Profile)
			if err != nil {
				return err
			}

			logger.Info("Starting scan",
				zap.Strings("targets", cfg.Scan.Targets),
				zap.String("profile", profile.ID),
				zap.Bool("ai", cfg.Scan.UseAI),
			)

			providerFor, cleanup, err := buildProvider(cfg, profile, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			reports := make([]*schemas.AnalysisReport, len(cfg.Scan.Targets))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(scanConcurrency)

			for i, target := range cfg.Scan.Targets {
				g.Go(func() error {
					code, label, err := readTarget(target)
					if err != nil {
						return err
					}
					rep, err := providerFor(label).Analyze(gctx, code, cfg.Scan.ContextHint)
					if err != nil {
						return fmt.Errorf("analysis of %s failed: %w", label, err)
					}
					reports[i] = rep
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if cfg.Scan.Manifest != "" {
				audits, err := deps.AuditFile(cfg.Scan.Manifest, profile)
				if err != nil {
					return err
				}
				reports[0].Dependencies = audits
			}

			reporter, err := reporting.New(cfg.Scan.Format, cfg.Scan.Output)
			if err != nil {
				return err
			}
			critical := 0
			for _, rep := range reports {
				critical += rep.SeverityCounts()[schemas.SeverityCritical]
				if err := reporter.Write(rep); err != nil {
					reporter.Close()
					return err
				}
			}
			if err := reporter.Close(); err != nil {
				return err
			}

			if critical > 0 {
				return fmt.Errorf("scan found %d critical issue(s)", critical)
			}
			return nil
		},
	}

	scanCmd.Flags().StringP("profile", "p", "", "Platform profile id (see 'relic profiles'). Defaults to the first registered profile.")
	scanCmd.Flags().StringP("format", "f", "text", "Report format: 'text', 'json', or 'checkstyle'.")
	scanCmd.Flags().StringP("output", "o", "", "Output file path. Writes to stdout when unset.")
	scanCmd.Flags().Bool("ai", false, "Route analysis through the external AI provider instead of the rule engine.")
	scanCmd.Flags().String("context", "", "Free-text context forwarded to the AI provider (used with --ai).")
	scanCmd.Flags().StringP("manifest", "m", "", "Path to a package.json-style manifest to audit against the profile's advisories.")

	return scanCmd
}

// buildProvider returns a factory that yields a per-target analysis provider,
// plus a cleanup function releasing shared resources.
func buildProvider(cfg *config.Config, profile *rules.Profile, logger *zap.Logger) (func(target string) schemas.AnalysisProvider, func(), error) {
	if cfg.Scan.UseAI {
		client, err := llmclient.NewGeminiClient(cfg.Analyzer, logger)
		if err != nil {
			return nil, nil, err
		}
		a := analyzer.New(client, cfg.Analyzer, profile.ID, logger)
		return func(target string) schemas.AnalysisProvider {
			return a.WithTarget(target)
		}, func() { client.Close() }, nil
	}

	eng := engine.New(profile, scoring.PolicyFromConfig(cfg.Scoring), logger)
	return func(target string) schemas.AnalysisProvider {
		return eng.WithTarget(target)
	}, func() {}, nil
}

// resolveProfile maps an optional profile id to a registered profile.
func resolveProfile(id string) (*rules.Profile, error) {
	if id == "" {
		return rules.Default(), nil
	}
	return rules.Get(id)
}

// readTarget loads one scan input. "-" means stdin.
func readTarget(target string) (code, label string, err error) {
	if target == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", target, err)
	}
	return string(data), target, nil
}
