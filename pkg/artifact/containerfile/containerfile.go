// Package containerfile renders the multi-stage image build recipe of a model.
//
// The recipe copies the model directory from a named source stage
// (MODEL_SOURCE_NAME) into the base serving image (BASE_IMAGE_NAME),
// normalizes permissions as root and drops to a fixed non-root user.
package containerfile

import (
	_ "embed"
	"path"

	v1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
)

const templateName = "Containerfile"

//go:embed templates/Containerfile.tmpl
var containerfileTemplate string

// GetTemplate returns the named template of this package.
var GetTemplate = internal.NewTemplateGetter(map[string]string{
	templateName: containerfileTemplate,
})

// Renderer renders Containerfiles.
type Renderer struct {
	tmpl *internal.TemplateRenderer
}

// NewRenderer creates a Containerfile renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: internal.NewTemplateRenderer(GetTemplate),
	}
}

// Kind implements artifact.Renderer.
func (r *Renderer) Kind() artifact.Kind {
	return artifact.KindContainerfile
}

// Path returns the Containerfile path of a model.
func Path(safeName string) string {
	return path.Join(defaults.ContainerfilesDir, "Containerfile-"+safeName)
}

type annotation struct {
	Key   string
	Value string
}

type templateData struct {
	ModelDir    string
	User        int
	Maintainer  string
	Description string
	Annotations []annotation
}

// Render implements artifact.Renderer.
func (r *Renderer) Render(m *config.Resolved) ([]artifact.File, error) {
	name, err := m.Name()
	if err != nil {
		return nil, err
	}

	data := templateData{
		ModelDir:    defaults.ModelDir,
		User:        defaults.NonRootUID,
		Maintainer:  m.String(internal.KeyMaintainer, defaults.Maintainer),
		Description: m.String(internal.KeyDescription, name+" model"),
	}

	data.Annotations = append(data.Annotations,
		annotation{Key: v1.AnnotationTitle, Value: name},
		annotation{Key: v1.AnnotationDescription, Value: data.Description},
	)
	if m.Has(internal.KeyMaintainer) {
		data.Annotations = append(data.Annotations, annotation{Key: v1.AnnotationAuthors, Value: data.Maintainer})
	}
	if url := m.String(internal.KeyModelGGUFURL, ""); url != "" {
		data.Annotations = append(data.Annotations, annotation{Key: v1.AnnotationSource, Value: url})
	}

	content, err := r.tmpl.Render(templateName, data)
	if err != nil {
		return nil, err
	}

	return []artifact.File{{
		Path:    Path(m.SafeName()),
		Kind:    artifact.KindContainerfile,
		Content: []byte(content),
	}}, nil
}
