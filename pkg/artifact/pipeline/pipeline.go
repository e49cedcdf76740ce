// Package pipeline renders the GitHub Actions job that builds and pushes the
// application image of a model.
//
// Jobs are not written to disk per model. The generator folds them, with the
// image-name environment lines, into the run output, and the workflow package
// can splice them into an existing workflow file.
package pipeline

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/containerfile"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/naming"
)

const (
	templateName = "job.yaml"
	dataRoot     = "/mnt/docker"
)

//go:embed templates/job.yaml.tmpl
var jobTemplate string

// GetTemplate returns the named template of this package.
var GetTemplate = internal.NewTemplateGetter(map[string]string{
	templateName: jobTemplate,
})

// Job is the CI job of one model.
type Job struct {
	// ID is the workflow job key, build-app-image-<safe>.
	ID string `json:"id" yaml:"id"`

	// EnvVar is the variable holding the image name suffix.
	EnvVar string `json:"envVar" yaml:"envVar"`

	// EnvLine is the workflow env entry declaring EnvVar.
	EnvLine string `json:"envLine" yaml:"envLine"`

	// Stanza is the job text, indented to sit under "jobs:".
	Stanza string `json:"-" yaml:"-"`
}

// JobID returns the workflow job key of a model.
func JobID(safeName string) string {
	return "build-app-image-" + safeName
}

// EnvLine returns the workflow env entry of a model.
func EnvLine(safeName string) string {
	return fmt.Sprintf("  %s: %s", naming.EnvVarName(safeName), naming.ImageName(safeName))
}

// Renderer renders CI job stanzas.
type Renderer struct {
	tmpl *internal.TemplateRenderer
}

// NewRenderer creates a pipeline renderer. The template uses [[ ]] actions
// because the job text is full of ${{ }} workflow expressions.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: internal.NewTemplateRenderer(GetTemplate, internal.WithDelims("[[", "]]")),
	}
}

// Kind returns artifact.KindPipeline.
func (r *Renderer) Kind() artifact.Kind {
	return artifact.KindPipeline
}

type templateData struct {
	JobID         string
	Name          string
	EnvVar        string
	ModelSource   string
	Containerfile string
	DataRoot      string
}

// Render renders the job of m.
func (r *Renderer) Render(m *config.Resolved) (Job, error) {
	name, err := m.Name()
	if err != nil {
		return Job{}, err
	}

	safe := m.SafeName()
	data := templateData{
		JobID:         JobID(safe),
		Name:          name,
		EnvVar:        naming.EnvVarName(safe),
		ModelSource:   m.Source(),
		Containerfile: containerfile.Path(safe),
		DataRoot:      dataRoot,
	}

	stanza, err := r.tmpl.Render(templateName, data)
	if err != nil {
		return Job{}, err
	}

	return Job{
		ID:      data.JobID,
		EnvVar:  data.EnvVar,
		EnvLine: EnvLine(safe),
		Stanza:  strings.TrimRight(stanza, "\n"),
	}, nil
}
