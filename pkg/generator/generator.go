package generator

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/containerfile"
	"github.com/ramalama-labs/modelgen/pkg/artifact/flatconfig"
	"github.com/ramalama-labs/modelgen/pkg/artifact/kubernetes"
	"github.com/ramalama-labs/modelgen/pkg/artifact/pipeline"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/ramalama-labs/modelgen/pkg/generator/result"
	"github.com/ramalama-labs/modelgen/pkg/header"
)

// MetadataVersion is the summary metadata key holding the tool version.
const MetadataVersion = "version"

// Plan is the rendered, not yet written output of one model.
type Plan struct {
	Model    string
	SafeName string
	Files    []artifact.File
	Job      pipeline.Job

	// Warnings are non-fatal problems found while resolving the model.
	Warnings []string
}

// Generator renders and writes the artifacts of every configured model.
type Generator struct {
	cfg       *Config
	renderers *artifact.Registry
	jobs      *pipeline.Renderer
	dirs      *DirectoryManager
	ctxCheck  *ContextChecker
}

// New creates a Generator. A nil cfg uses NewConfig().
func New(cfg *Config) (*Generator, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Generator{
		cfg: cfg,
		renderers: artifact.NewRegistry(
			containerfile.NewRenderer(),
			kubernetes.NewRenderer(kubernetes.WithMode(cfg.K8sMode())),
			flatconfig.NewRenderer(),
		),
		jobs:     pipeline.NewRenderer(),
		dirs:     NewDirectoryManager(),
		ctxCheck: NewContextChecker(),
	}, nil
}

// Generate plans every model, validates the plan and writes it. Nothing is
// written unless every model resolves and renders and sanitized names are
// unique. A write failure aborts the run; files of earlier models stay.
func (g *Generator) Generate(ctx context.Context, global *config.Global) (*result.Output, error) {
	start := time.Now()
	runID := uuid.NewString()

	slog.Info("generating model artifacts",
		"run_id", runID,
		"models", len(global.ModelKeys()),
		"repo_root", g.cfg.RepoRoot(),
		"dry_run", g.cfg.DryRun(),
		"renderers", g.renderers.List(),
	)

	out, err := g.generate(ctx, runID, global)
	generateDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		generateTotal.WithLabelValues("error").Inc()
		slog.Error("generation failed", "run_id", runID, "error", err)
		return nil, err
	}

	out.TotalDuration = time.Since(start)
	if g.cfg.DryRun() {
		generateTotal.WithLabelValues("dry_run").Inc()
	} else {
		generateTotal.WithLabelValues("success").Inc()
	}

	slog.Info("generation completed",
		"run_id", runID,
		"models", len(out.Results),
		"files", out.TotalFiles,
		"warnings", len(out.Errors),
		"duration", out.TotalDuration,
	)

	return out, nil
}

func (g *Generator) generate(ctx context.Context, runID string, global *config.Global) (*result.Output, error) {
	plans, err := g.Plan(ctx, global)
	if err != nil {
		return nil, err
	}

	var opts []header.Option
	if v := g.cfg.Version(); v != "" {
		opts = append(opts, header.WithMetadata(MetadataVersion, v))
	}
	out := result.NewOutput(runID, g.cfg.RepoRoot(), g.cfg.DryRun(), opts...)

	for _, p := range plans {
		if err := g.ctxCheck.Check(ctx); err != nil {
			return nil, err
		}
		res, err := g.apply(p)
		if err != nil {
			return nil, err
		}
		out.AddResult(res, p.Job)
	}

	if g.cfg.IncludeChecksums() && !g.cfg.DryRun() {
		if err := g.writeChecksums(out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Plan resolves every model in document order, checks that sanitized names
// are usable and unique, then renders every artifact in memory.
func (g *Generator) Plan(ctx context.Context, global *config.Global) ([]Plan, error) {
	keys := global.ModelKeys()
	if len(keys) == 0 {
		slog.Warn("no models found in configuration")
	}

	models := make([]*config.Resolved, 0, len(keys))
	for _, key := range keys {
		if err := g.ctxCheck.Check(ctx); err != nil {
			return nil, err
		}
		override, _ := global.Model(key)
		m, err := config.Resolve(key, override, global)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	if err := ValidateNames(models); err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, len(models))
	for _, m := range models {
		if err := g.ctxCheck.Check(ctx); err != nil {
			return nil, err
		}
		p, err := g.planModel(m)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (g *Generator) planModel(m *config.Resolved) (Plan, error) {
	p := Plan{
		Model:    m.Key(),
		SafeName: m.SafeName(),
		Warnings: m.Warnings(),
	}

	for _, r := range g.renderers.All() {
		files, err := r.Render(m)
		if err != nil {
			return Plan{}, errors.WrapWithContext(errors.CodeOf(err), "failed to render artifact", err,
				map[string]interface{}{"model": m.Key(), "kind": string(r.Kind())})
		}
		p.Files = append(p.Files, files...)
	}

	job, err := g.jobs.Render(m)
	if err != nil {
		return Plan{}, errors.WrapWithContext(errors.CodeOf(err), "failed to render artifact", err,
			map[string]interface{}{"model": m.Key(), "kind": string(g.jobs.Kind())})
	}
	p.Job = job

	modelsProcessed.Inc()
	return p, nil
}

// ValidateNames fails when a model key sanitizes to an empty name or when
// two model keys sanitize to the same name.
func ValidateNames(models []*config.Resolved) error {
	byName := make(map[string][]string, len(models))
	var order []string

	for _, m := range models {
		safe := m.SafeName()
		if safe == "" {
			return errors.NewWithContext(errors.ErrCodeConflict, "model key sanitizes to an empty name",
				map[string]interface{}{"model": m.Key()})
		}
		if _, ok := byName[safe]; !ok {
			order = append(order, safe)
		}
		byName[safe] = append(byName[safe], m.Key())
	}

	for _, safe := range order {
		if keys := byName[safe]; len(keys) > 1 {
			return errors.NewWithContext(errors.ErrCodeConflict, "model keys sanitize to the same name",
				map[string]interface{}{"name": safe, "models": strings.Join(keys, ", ")})
		}
	}
	return nil
}

func (g *Generator) apply(p Plan) (*result.Result, error) {
	start := time.Now()
	res := result.NewResult(p.Model, p.SafeName)

	slog.Info("processing model", "model", p.Model, "name", p.SafeName)

	for _, w := range p.Warnings {
		res.AddError(errors.New(errors.ErrCodeInvalidConfig, w))
	}

	if g.cfg.DryRun() {
		for _, f := range p.Files {
			res.AddFile(f.Path, int64(len(f.Content)))
		}
		res.MarkSuccess()
		return res, nil
	}

	root := g.cfg.RepoRoot()
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range p.Files {
		dir := filepath.Join(root, filepath.FromSlash(path.Dir(f.Path)))
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	if err := g.dirs.CreateDirectories(dirs, defaults.DirPerm); err != nil {
		return nil, err
	}

	w := NewFileWriter(root, res)
	for _, f := range p.Files {
		if err := w.WriteFile(f.Path, f.Content, defaults.FilePerm); err != nil {
			return nil, err
		}
		artifactsWritten.WithLabelValues(string(f.Kind)).Inc()
		slog.Info("generated", "path", f.Path)
	}

	res.Duration = time.Since(start)
	res.MarkSuccess()
	return res, nil
}

func (g *Generator) writeChecksums(out *result.Output) error {
	var files []string
	for _, r := range out.Results {
		files = append(files, r.Files...)
	}

	content, err := NewChecksumGenerator(g.cfg.RepoRoot()).Generate(out.RunID, files)
	if err != nil {
		return err
	}

	target := filepath.Join(g.cfg.RepoRoot(), defaults.ChecksumsFile)
	if err := os.WriteFile(target, []byte(content), defaults.FilePerm); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write checksums", err,
			map[string]interface{}{"path": target})
	}

	out.Checksums = defaults.ChecksumsFile
	slog.Debug("checksums written", "path", target, "files", len(files))
	return nil
}
