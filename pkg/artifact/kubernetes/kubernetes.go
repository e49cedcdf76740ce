package kubernetes

import (
	"log/slog"
	"strings"

	"github.com/ramalama-labs/modelgen/pkg/artifact"
	"github.com/ramalama-labs/modelgen/pkg/artifact/internal"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"sigs.k8s.io/yaml"
)

// Mode selects the Kubernetes artifact layout.
type Mode string

const (
	// ModeDeployment writes one flat Deployment manifest.
	ModeDeployment Mode = defaults.K8sModeDeployment

	// ModeKustomize writes a Kustomize overlay.
	ModeKustomize Mode = defaults.K8sModeKustomize
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDeployment:
		return ModeDeployment, nil
	case ModeKustomize:
		return ModeKustomize, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "unknown kubernetes mode",
			map[string]interface{}{"mode": s, "supported": strings.Join(SupportedModes(), ",")})
	}
}

// SupportedModes returns the supported modes as strings.
func SupportedModes() []string {
	return []string{string(ModeDeployment), string(ModeKustomize)}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMode forces a mode for every model, ignoring k8s_mode.
// An empty mode leaves the per-model selection in place.
func WithMode(mode Mode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// Renderer renders Kubernetes manifests and overlays.
type Renderer struct {
	mode Mode
}

// NewRenderer creates a Kubernetes renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind implements artifact.Renderer.
func (r *Renderer) Kind() artifact.Kind {
	return artifact.KindKubernetes
}

// ModeFor returns the mode used for m.
func (r *Renderer) ModeFor(m *config.Resolved) (Mode, error) {
	if r.mode != "" {
		return r.mode, nil
	}
	if !m.Has(internal.KeyK8sMode) {
		return ModeDeployment, nil
	}
	mode, err := ParseMode(m.String(internal.KeyK8sMode, ""))
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid k8s_mode", err,
			map[string]interface{}{"model": m.Key()})
	}
	return mode, nil
}

// Render implements artifact.Renderer.
func (r *Renderer) Render(m *config.Resolved) ([]artifact.File, error) {
	if _, err := m.Name(); err != nil {
		return nil, err
	}

	mode, err := r.ModeFor(m)
	if err != nil {
		return nil, err
	}

	var files []artifact.File
	switch mode {
	case ModeKustomize:
		files, err = renderOverlay(m)
	default:
		files, err = renderDeployment(m)
	}
	if err != nil {
		return nil, err
	}

	if enabled, ns := internal.Lightspeed(m); enabled {
		f, err := renderLightspeed(m, ns)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	slog.Debug("kubernetes artifacts rendered",
		"model", m.Key(),
		"mode", mode,
		"files", len(files),
	)

	return files, nil
}

// marshal serializes obj to YAML, dropping null fields and empty objects.
func marshal(obj interface{}) ([]byte, error) {
	raw, err := yaml.Marshal(obj)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to serialize manifest", err)
	}

	var tree map[string]interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to reload manifest", err)
	}
	prune(tree)

	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to serialize manifest", err)
	}
	return out, nil
}

// prune removes nil values and empty maps, recursively. It reports whether
// v itself ended up empty.
func prune(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		for k, child := range t {
			if prune(child) {
				delete(t, k)
			}
		}
		return len(t) == 0
	case []interface{}:
		for _, child := range t {
			prune(child)
		}
		return false
	default:
		return false
	}
}
