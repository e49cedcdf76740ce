package artifact

import "github.com/ramalama-labs/modelgen/pkg/config"

// Kind identifies an artifact renderer.
type Kind string

const (
	// KindContainerfile renders the image build recipe.
	KindContainerfile Kind = "containerfile"

	// KindKubernetes renders a Deployment or a Kustomize overlay set.
	KindKubernetes Kind = "kubernetes"

	// KindPipeline renders the CI job stanza.
	KindPipeline Kind = "pipeline"

	// KindFlatConfig renders the KEY="value" model configuration file.
	KindFlatConfig Kind = "flatconfig"
)

// File is one rendered artifact. Path is slash-separated and relative to
// the repository root.
type File struct {
	Path    string `json:"path" yaml:"path"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Content []byte `json:"-" yaml:"-"`
}

// Renderer turns one merged model configuration into files.
// Implementations are pure: the same input yields byte-identical output.
type Renderer interface {
	Kind() Kind
	Render(m *config.Resolved) ([]File, error)
}
