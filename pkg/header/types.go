// Package header provides the Kubernetes-style kind/apiVersion/metadata
// header carried by modelgen's serialized summaries.
package header

import (
	"fmt"
	"strings"
	"time"
)

var (
	ApiVersionDomain = "modelgen.ramalama.io"
	ApiVersionV1     = "v1"
)

// MetadataGeneratedAt is the metadata key holding the creation timestamp.
const MetadataGeneratedAt = "generated-timestamp"

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header contains the kind, API version and metadata of a summary document.
type Header struct {
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Set initializes the Header for kind. The APIVersion becomes
// "<kind>.modelgen.ramalama.io/v1" and the metadata gets a generation
// timestamp. Existing metadata is kept.
func (h *Header) Set(kind string) {
	h.Kind = kind
	h.APIVersion = fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), ApiVersionDomain, ApiVersionV1)
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[MetadataGeneratedAt] = time.Now().UTC().Format(time.RFC3339)
}
