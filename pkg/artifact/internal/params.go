package internal

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/ramalama-labs/modelgen/pkg/naming"
)

// Top-level keys read by renderers.
const (
	KeyDescription  = "description"
	KeyMaintainer   = "maintainer"
	KeyModelGGUFURL = "model_gguf_url"
	KeyModelFile    = "model_file"
	KeyRegistryPath = "registry_path"
	KeyNamespace    = "namespace"
	KeyK8sMode      = "k8s_mode"
	KeyLightspeed   = "lightspeed"
)

// Keys of the parameters mapping.
const (
	ParamPort       = "port"
	ParamCtxSize    = "ctx_size"
	ParamTemp       = "temp"
	ParamCacheReuse = "cache_reuse"
	ParamThreads    = "threads"
	ParamTopK       = "top_k"
	ParamTopP       = "top_p"
	ParamMinP       = "min_p"
	ParamHost       = "host"
)

// ServerParams holds the llama-server settings of one model as literal flag
// values, defaults applied.
type ServerParams struct {
	Port       string
	ModelFile  string
	CtxSize    string
	Temp       string
	CacheReuse string
	Threads    string
	TopK       string
	TopP       string
	MinP       string
	Host       string
}

// ResolveServerParams reads the parameters of m, falling back to the
// package defaults for anything absent, null or non-scalar.
func ResolveServerParams(m *config.Resolved) ServerParams {
	params := m.Parameters()
	get := func(key, def string) string {
		v, ok := params.Get(key)
		if !ok || !v.IsScalar() {
			return def
		}
		return v.Text()
	}

	return ServerParams{
		Port:       get(ParamPort, defaults.Port),
		ModelFile:  m.String(KeyModelFile, defaults.ModelFile),
		CtxSize:    get(ParamCtxSize, defaults.CtxSize),
		Temp:       get(ParamTemp, defaults.Temp),
		CacheReuse: get(ParamCacheReuse, defaults.CacheReuse),
		Threads:    get(ParamThreads, defaults.Threads),
		TopK:       get(ParamTopK, defaults.TopK),
		TopP:       get(ParamTopP, defaults.TopP),
		MinP:       get(ParamMinP, defaults.MinP),
		Host:       get(ParamHost, defaults.Host),
	}
}

// Alias returns the model alias served by llama-server.
func Alias(safe string) string {
	return safe + "-model"
}

// Image returns the application image reference of m,
// "<registry_path>/<safe>-ramalama:latest".
func Image(m *config.Resolved) (string, error) {
	registry := strings.TrimSuffix(m.String(KeyRegistryPath, defaults.RegistryPath), "/")
	image := fmt.Sprintf("%s/%s:%s", registry, naming.ImageName(m.SafeName()), defaults.ImageTag)

	if _, err := reference.ParseNormalizedNamed(image); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid image reference", err,
			map[string]interface{}{"model": m.Key(), "image": image})
	}
	return image, nil
}

// ImageRepository returns the image reference of m without its tag.
func ImageRepository(m *config.Resolved) (string, error) {
	image, err := Image(m)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(image, ":"+defaults.ImageTag), nil
}

// Lightspeed reports whether the Lightspeed overlay is requested and its
// target namespace.
func Lightspeed(m *config.Resolved) (bool, string) {
	ls := m.Section(KeyLightspeed)
	enabled, ok := ls.Get("enabled")
	if !ok || !enabled.Bool() {
		return false, ""
	}

	ns := defaults.LightspeedNamespace
	if v, ok := ls.Get(KeyNamespace); ok && v.IsScalar() && v.Text() != "" {
		ns = v.Text()
	}
	return true, ns
}
