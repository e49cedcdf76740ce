// Package flatconfig renders models/<safe>.conf, a shell-sourceable
// KEY="value" summary of a model.
package flatconfig

import (
	_ "embed"
	"path"
	"strings"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
)

const templateName = "model.conf"

//go:embed templates/model.conf.tmpl
var confTemplate string

// GetTemplate returns the named template of this package.
var GetTemplate = internal.NewTemplateGetter(map[string]string{
	templateName: confTemplate,
})

// Path returns the flat config path of a model.
func Path(safeName string) string {
	return path.Join(defaults.ModelsDir, safeName+".conf")
}

// Renderer renders flat config files.
type Renderer struct {
	tmpl *internal.TemplateRenderer
}

// NewRenderer creates a flat config renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: internal.NewTemplateRenderer(GetTemplate),
	}
}

// Kind implements artifact.Renderer.
func (r *Renderer) Kind() artifact.Kind {
	return artifact.KindFlatConfig
}

type templateData struct {
	Title               string
	Name                string
	Description         string
	GGUFURL             string
	Source              string
	ModelFile           string
	Maintainer          string
	Params              internal.ServerParams
	Lightspeed          bool
	LightspeedNamespace string
}

// Render implements artifact.Renderer.
func (r *Renderer) Render(m *config.Resolved) ([]artifact.File, error) {
	name, err := m.Name()
	if err != nil {
		return nil, err
	}

	data := templateData{
		Title:       strings.Join(strings.Fields(name), " "),
		Name:        name,
		Description: m.String(internal.KeyDescription, ""),
		GGUFURL:     m.String(internal.KeyModelGGUFURL, ""),
		Source:      m.Source(),
		ModelFile:   m.String(internal.KeyModelFile, ""),
		Maintainer:  m.String(internal.KeyMaintainer, defaults.Maintainer),
		Params:      internal.ResolveServerParams(m),
	}
	data.Lightspeed, data.LightspeedNamespace = internal.Lightspeed(m)

	content, err := r.tmpl.Render(templateName, data)
	if err != nil {
		return nil, err
	}

	return []artifact.File{{
		Path:    Path(m.SafeName()),
		Kind:    artifact.KindFlatConfig,
		Content: []byte(content),
	}}, nil
}
