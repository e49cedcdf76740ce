package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/ramalama-labs/modelgen/pkg/generator"
	"github.com/ramalama-labs/modelgen/pkg/logging"
	"github.com/ramalama-labs/modelgen/pkg/serializer"
	"github.com/ramalama-labs/modelgen/pkg/workflow"
)

const name = "modelgen"

var (
	// overridden during build with ldflags
	// e.g., -X "github.com/ramalama-labs/modelgen/pkg/cli.version=1.0.0"
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Generate model deployment artifacts from a YAML configuration",
		Description: `Reads the model configuration and writes, for every model:

  - containerfiles/Containerfile-<name>: image build recipe
  - k8s/deployment-<name>.yaml, or k8s/models/<name>/ Kustomize overlays
  - k8s/lightspeed/overlays/<name>/kustomization.yaml when lightspeed is enabled
  - models/<name>.conf: flat KEY="value" configuration

CI job stanzas and image env lines are collected into the run summary and,
with --update-workflow, folded into the workflow file.

# Examples

Generate from the default configuration:
  modelgen

Preview without writing:
  modelgen --dry-run --summary - --format yaml

Use Kustomize overlays for every model:
  modelgen --k8s-mode kustomize -r /path/to/repo`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaults.ConfigPath,
				Usage:   "Path to the YAML configuration file, relative to the repository root unless absolute",
				Sources: cli.EnvVars("MODELGEN_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "repo-root",
				Aliases: []string{"r"},
				Value:   defaults.RepoRoot,
				Usage:   "Path to the repository root",
				Sources: cli.EnvVars("MODELGEN_REPO_ROOT"),
			},
			&cli.StringFlag{
				Name:    "k8s-mode",
				Usage:   "Force the Kubernetes output mode for every model: deployment or kustomize",
				Sources: cli.EnvVars("MODELGEN_K8S_MODE"),
			},
			&cli.BoolFlag{
				Name:    "update-workflow",
				Usage:   "Insert env lines and jobs into the CI workflow file",
				Sources: cli.EnvVars("MODELGEN_UPDATE_WORKFLOW"),
			},
			&cli.StringFlag{
				Name:    "workflow",
				Value:   defaults.WorkflowPath,
				Usage:   "Workflow file updated by --update-workflow, relative to the repository root unless absolute",
				Sources: cli.EnvVars("MODELGEN_WORKFLOW"),
			},
			&cli.BoolFlag{
				Name:    "checksums",
				Usage:   "Write checksums.txt for the generated files",
				Sources: cli.EnvVars("MODELGEN_CHECKSUMS"),
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "Render everything but write nothing",
				Sources: cli.EnvVars("MODELGEN_DRY_RUN"),
			},
			&cli.StringFlag{
				Name:    "summary",
				Usage:   "Write the run summary to a file, or - for stdout",
				Sources: cli.EnvVars("MODELGEN_SUMMARY"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatYAML),
				Usage:   "Summary format: yaml, json or table. When unset, a --summary file extension picks it",
				Sources: cli.EnvVars("MODELGEN_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "Write Prometheus metrics in text format to this file",
				Sources: cli.EnvVars("MODELGEN_METRICS_FILE"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			opts := []logging.Option{logging.WithJSON(cmd.Bool("log-json"))}
			if ew := cmd.Root().ErrWriter; ew != nil {
				opts = append(opts, logging.WithOutput(ew))
			}
			if cmd.Bool("debug") {
				opts = append(opts, logging.WithLevel(slog.LevelDebug))
			}
			logging.SetDefaultStructuredLogger(name, version, opts...)
			return ctx, nil
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	repoRoot := cmd.String("repo-root")
	configPath := resolvePath(repoRoot, cmd.String("config"))
	summaryPath := cmd.String("summary")
	metricsFile := cmd.String("metrics-file")

	mode, err := parseK8sMode(cmd)
	if err != nil {
		return err
	}
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	global, err := config.Load(configPath)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			slog.Error("configuration file not found", "path", configPath,
				"hint", "set --config, or --repo-root to the repository holding "+defaults.ConfigPath)
			return err
		}
		slog.Error("failed to load configuration", "error", err, "path", configPath)
		return err
	}

	g, err := generator.New(generator.NewConfig(
		generator.WithRepoRoot(repoRoot),
		generator.WithK8sMode(mode),
		generator.WithDryRun(cmd.Bool("dry-run")),
		generator.WithIncludeChecksums(cmd.Bool("checksums")),
		generator.WithVersion(version),
	))
	if err != nil {
		return err
	}

	out, genErr := g.Generate(ctx, global)
	if metricsFile != "" {
		if err := generator.WriteMetrics(metricsFile); err != nil {
			slog.Warn("failed to write metrics", "error", err, "path", metricsFile)
		}
	}
	if genErr != nil {
		return genErr
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	human := summaryPath != serializer.StdoutURI
	if human {
		printGenerated(w, out)
	}

	if cmd.Bool("update-workflow") && !out.DryRun {
		u := workflow.NewUpdater(resolvePath(repoRoot, cmd.String("workflow")))
		res, err := u.Update(out.EnvVars, out.Stanzas())
		switch {
		case err != nil:
			slog.Warn("failed to update workflow", "error", err, "path", u.Path())
		case !res.Skipped && human:
			fmt.Fprintf(w, "  Updated: %s\n", res.Path)
			fmt.Fprintf(w, "  Backup: %s\n", res.Backup)
		}
	}

	if summaryPath != "" {
		if err := writeSummary(ctx, format, summaryPath, out); err != nil {
			return err
		}
	}

	if human {
		fmt.Fprintf(w, "\n%s\n", out.Summary())
	}
	return nil
}

func writeSummary(ctx context.Context, format serializer.Format, path string, data interface{}) error {
	s, err := serializer.NewFileWriterOrStdout(format, path)
	if err != nil {
		return err
	}
	if closer, ok := s.(serializer.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close summary writer", "error", err)
			}
		}()
	}
	return s.Serialize(ctx, data)
}
