package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/homeset/pkg/config"
	"github.com/arthur-debert/homeset/pkg/display"
	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/materialize"
	"github.com/arthur-debert/homeset/pkg/report"
	"github.com/arthur-debert/homeset/pkg/steps"
)

//go:embed docs/usage.md
var usageDoc string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: linkShort,
	Long:  linkLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaterialize(cmd, materialize.StrategyLink)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: syncShort,
	Long:  syncLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMaterialize(cmd, materialize.StrategyCopy)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: applyShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		strategy, err := materialize.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}
		return materializeAndRender(cmd, cfg, strategy)
	},
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: provisionShort,
	Long:  provisionLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		strategy, err := materialize.ParseStrategy(cfg.Strategy)
		if err != nil {
			return err
		}

		var stepList []steps.Step
		for _, cs := range cfg.Provision.Steps {
			if dryRun {
				name := cs.Name
				stepList = append(stepList, steps.Step{
					Name:       name,
					BestEffort: cs.BestEffort,
					Run: func(context.Context) error {
						return nil
					},
					Precondition: func(context.Context) error {
						return fmt.Errorf("dry run")
					},
				})
				continue
			}
			stepList = append(stepList, steps.NewCommandStep(cs.Name, cs.Command, cs.Args, cs.BestEffort))
		}

		var materializeReport *report.Report
		stepList = append(stepList, steps.Step{
			Name: "materialize dotfiles",
			Precondition: func(context.Context) error {
				if info, err := os.Stat(cfg.TargetHome); err != nil || !info.IsDir() {
					return fmt.Errorf("target home %s does not exist", cfg.TargetHome)
				}
				return nil
			},
			Run: func(ctx context.Context) error {
				m, err := materialize.New(options(cfg, strategy))
				if err != nil {
					return err
				}
				materializeReport, err = m.Materialize(ctx)
				return err
			},
		})

		runner := steps.NewRunner("provision", stepList...)
		rep, runErr := runner.Run(cmd.Context())
		rep.Merge(materializeReport)

		if err := renderReport(cmd, rep); err != nil {
			return err
		}
		return runErr
	},
}

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: genconfigShort,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := cfg.MarshalTOML()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: docsShort,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), display.RenderMarkdown(usageDoc))
	},
}

// loadConfig loads the layered configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if sourceFlag != "" {
		cfg.SourceRoot = sourceFlag
	}
	if homeFlag != "" {
		cfg.TargetHome = homeFlag
	}
	if userFlag != "" {
		cfg.TargetUser = userFlag
	}

	if cfg.TargetHome == "" {
		return nil, errors.New(errors.ErrConfigValid, "target_home is not set (config or --home)")
	}
	if cfg.TargetUser == "" {
		return nil, errors.New(errors.ErrConfigValid, "target_user is not set (config or --user)")
	}
	return cfg, nil
}

func options(cfg *config.Config, strategy materialize.Strategy) materialize.Options {
	return materialize.Options{
		SourceRoot: cfg.SourceRoot,
		TargetHome: cfg.TargetHome,
		TargetUser: cfg.TargetUser,
		Strategy:   strategy,
		DryRun:     dryRun,
	}
}

func runMaterialize(cmd *cobra.Command, strategy materialize.Strategy) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return materializeAndRender(cmd, cfg, strategy)
}

func materializeAndRender(cmd *cobra.Command, cfg *config.Config, strategy materialize.Strategy) error {
	m, err := materialize.New(options(cfg, strategy))
	if err != nil {
		return err
	}

	rep, err := m.Materialize(cmd.Context())
	if err != nil {
		return err
	}
	return renderReport(cmd, rep)
}

func renderReport(cmd *cobra.Command, rep *report.Report) error {
	format, err := display.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	out, err := display.RenderReport(rep, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
