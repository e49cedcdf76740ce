// Package generator orchestrates a generation run.
//
// A run has four phases:
//
//  1. Resolve: every entry of the models section is merged with defaults and
//     its template, in document order.
//  2. Validate: sanitized names must be non-empty and unique, otherwise the
//     run fails with a CONFLICT error before anything is written.
//  3. Render: every registered renderer plus the pipeline job renderer runs
//     in memory. A missing required field aborts the run here.
//  4. Write: output directories are created as needed and files are
//     overwritten. A write failure is fatal; files already written for
//     earlier models are left in place.
//
// Per-model CI jobs are returned as values and folded, in model order, into
// result.Output's EnvVars and Jobs.
//
// # Usage
//
//	cfg := generator.NewConfig(
//	    generator.WithRepoRoot("."),
//	    generator.WithK8sMode(kubernetes.ModeKustomize),
//	    generator.WithIncludeChecksums(true),
//	)
//	g, err := generator.New(cfg)
//	if err != nil {
//	    return err
//	}
//	out, err := g.Generate(ctx, global)
//
// # Metrics
//
// Runs record modelgen_generate_duration_seconds, modelgen_generate_total,
// modelgen_models_processed_total and modelgen_artifacts_written_total on
// the default Prometheus registry. WriteMetrics exports them to a textfile.
package generator
