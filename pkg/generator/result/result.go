// Package result tracks what a generation run produced: per-model file
// lists and the folded cross-model output (CI env lines and job stanzas).
package result

import (
	"fmt"
	"time"

	"github.com/ramalama-labs/modelgen/pkg/artifact/pipeline"
	"github.com/ramalama-labs/modelgen/pkg/header"
)

// KindGenerationResult is the header kind of a run summary.
const KindGenerationResult = "GenerationResult"

// Result is the outcome of one model.
type Result struct {
	// Model is the model key as declared in the configuration.
	Model string `json:"model" yaml:"model"`

	// SafeName is the sanitized name used in artifact paths.
	SafeName string `json:"safeName" yaml:"safeName"`

	// Files are the generated paths, relative to the repository root.
	Files []string `json:"files" yaml:"files"`

	// Size is the total size of the generated files in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Duration is the time spent writing the model's files.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Errors are non-fatal errors recorded for this model.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Success is set once every file of the model was handled.
	Success bool `json:"success" yaml:"success"`
}

// NewResult creates a Result for a model.
func NewResult(model, safeName string) *Result {
	return &Result{
		Model:    model,
		SafeName: safeName,
		Files:    make([]string, 0),
		Errors:   make([]string, 0),
	}
}

// AddFile records a generated file.
func (r *Result) AddFile(path string, size int64) {
	r.Files = append(r.Files, path)
	r.Size += size
}

// AddError records a non-fatal error. Nil errors are ignored.
func (r *Result) AddError(err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, err.Error())
}

// MarkSuccess marks the model as fully generated.
func (r *Result) MarkSuccess() {
	r.Success = true
}

// ModelError is a model-level error in the run output.
type ModelError struct {
	Model string `json:"model" yaml:"model"`
	Error string `json:"error" yaml:"error"`
}

// Output is the summary of a whole run.
type Output struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID identifies the run in logs and metrics.
	RunID string `json:"runId" yaml:"runId"`

	// RepoRoot is the directory artifacts were written under.
	RepoRoot string `json:"repoRoot" yaml:"repoRoot"`

	// DryRun reports whether files were only planned.
	DryRun bool `json:"dryRun" yaml:"dryRun"`

	Results []*Result    `json:"results" yaml:"results"`
	Errors  []ModelError `json:"errors,omitempty" yaml:"errors,omitempty"`

	// EnvVars are the workflow env lines, one per model, in model order.
	EnvVars []string `json:"envVars" yaml:"envVars"`

	// Jobs are the CI jobs, one per model, in model order.
	Jobs []pipeline.Job `json:"jobs" yaml:"jobs"`

	// Checksums is the checksums file path, when one was written.
	Checksums string `json:"checksums,omitempty" yaml:"checksums,omitempty"`

	TotalFiles    int           `json:"totalFiles" yaml:"totalFiles"`
	TotalSize     int64         `json:"totalSize" yaml:"totalSize"`
	TotalDuration time.Duration `json:"totalDuration" yaml:"totalDuration"`
}

// NewOutput creates an empty Output with its header set. opts add header
// metadata such as the tool version.
func NewOutput(runID, repoRoot string, dryRun bool, opts ...header.Option) *Output {
	o := &Output{
		Header:   *header.New(opts...),
		RunID:    runID,
		RepoRoot: repoRoot,
		DryRun:   dryRun,
		Results:  make([]*Result, 0),
		EnvVars:  make([]string, 0),
		Jobs:     make([]pipeline.Job, 0),
	}
	o.Set(KindGenerationResult)
	return o
}

// AddResult appends a model result and its job, updating totals.
func (o *Output) AddResult(r *Result, job pipeline.Job) {
	o.Results = append(o.Results, r)
	o.TotalFiles += len(r.Files)
	o.TotalSize += r.Size
	o.EnvVars = append(o.EnvVars, job.EnvLine)
	o.Jobs = append(o.Jobs, job)

	for _, e := range r.Errors {
		o.Errors = append(o.Errors, ModelError{Model: r.Model, Error: e})
	}
}

// Stanzas returns the job stanzas in model order.
func (o *Output) Stanzas() []string {
	out := make([]string, len(o.Jobs))
	for i, j := range o.Jobs {
		out[i] = j.Stanza
	}
	return out
}

// HasErrors returns true if any model recorded an error.
func (o *Output) HasErrors() bool {
	return len(o.Errors) > 0
}

// SuccessCount returns the number of fully generated models.
func (o *Output) SuccessCount() int {
	count := 0
	for _, r := range o.Results {
		if r.Success {
			count++
		}
	}
	return count
}

// Summary returns a one-line human readable summary.
func (o *Output) Summary() string {
	verb := "Generated"
	if o.DryRun {
		verb = "Planned"
	}
	s := fmt.Sprintf("%s %d files (%s) in %s for %d/%d models",
		verb,
		o.TotalFiles,
		formatBytes(o.TotalSize),
		o.TotalDuration.Round(100*time.Millisecond),
		o.SuccessCount(),
		len(o.Results),
	)
	switch n := len(o.Errors); {
	case n == 1:
		s += ", 1 warning"
	case n > 1:
		s += fmt.Sprintf(", %d warnings", n)
	}
	return s
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
