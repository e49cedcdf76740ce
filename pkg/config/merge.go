package config

import (
	"fmt"
	"log/slog"

	"github.com/agnivade/levenshtein"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/ramalama-labs/modelgen/pkg/naming"
)

// Keys with a meaning to the merger.
const (
	KeyTemplate      = "template"
	KeyResourceSize  = "resource_size"
	KeyParameters    = "parameters"
	KeyResources     = "resources"
	KeyModelKey      = "model_key"
	KeyModelNameSafe = "model_name_safe"
	KeyModelSource   = "model_source"

	// DefaultResourceSize selects a template resource bundle when a model
	// does not name one.
	DefaultResourceSize = "small"

	// maxSuggestionDistance bounds "did you mean" suggestions for unknown templates.
	maxSuggestionDistance = 3
)

// MergeShallow applies src onto dst, both mappings. For a key present in
// both whose values are mappings in both, src's entries replace dst's
// entries key by key; any other value in src replaces dst's wholesale.
// Values taken from src are deep-copied, so dst never aliases src.
func MergeShallow(dst, src *Value) error {
	if !dst.IsMapping() || !src.IsMapping() {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig, "cannot merge non-mapping values",
			map[string]interface{}{"dst": dst.Kind().String(), "src": src.Kind().String()})
	}

	for _, k := range src.keys {
		sv := src.fields[k]
		dv, ok := dst.fields[k]
		if ok && dv.IsMapping() && sv.IsMapping() {
			for _, sk := range sv.keys {
				dv.Set(sk, sv.fields[sk].Clone())
			}
			continue
		}
		dst.Set(k, sv.Clone())
	}
	return nil
}

// Resolve builds the merged configuration of one model:
// defaults < template parameters and resources[size] < model overrides,
// then attaches model_key, model_name_safe and, when unset, model_source.
// global is never modified.
func Resolve(modelKey string, override *Value, global *Global) (*Resolved, error) {
	if override.IsNull() {
		override = Mapping()
	}
	if !override.IsMapping() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "model configuration must be a mapping",
			map[string]interface{}{"model": modelKey, "kind": override.Kind().String()})
	}

	merged := global.Defaults()

	warning, err := applyTemplate(modelKey, merged, override, global)
	if err != nil {
		return nil, err
	}

	if err := MergeShallow(merged, override); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to apply model overrides", err,
			map[string]interface{}{"model": modelKey})
	}

	for _, k := range []string{KeyParameters, KeyResources} {
		if v, ok := merged.Get(k); ok && !v.IsMapping() && !v.IsNull() {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig, "section must be a mapping",
				map[string]interface{}{"model": modelKey, "section": k, "kind": v.Kind().String()})
		}
	}

	safe := naming.Sanitize(modelKey)
	merged.Set(KeyModelKey, String(modelKey))
	merged.Set(KeyModelNameSafe, String(safe))

	if src, ok := merged.Get(KeyModelSource); !ok || src.IsNull() {
		merged.Set(KeyModelSource, String(safe+"-source"))
	}

	r := &Resolved{values: merged}
	if warning != "" {
		r.warnings = append(r.warnings, warning)
	}
	return r, nil
}

// applyTemplate merges the referenced template into merged. A reference
// that cannot be honoured is not fatal; it is returned as a warning.
func applyTemplate(modelKey string, merged, override *Value, global *Global) (string, error) {
	nameVal, ok := override.Get(KeyTemplate)
	if !ok || nameVal.IsNull() {
		return "", nil
	}
	if !nameVal.IsScalar() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "template reference must be a scalar",
			map[string]interface{}{"model": modelKey})
	}

	name := nameVal.Text()
	tmpl, found := global.Template(name)
	if !found {
		suggestion := closestName(name, global.TemplateNames())
		slog.Warn("model references unknown template, ignoring",
			"model", modelKey,
			"template", name,
			"suggestion", suggestion,
		)
		warning := fmt.Sprintf("unknown template %q ignored", name)
		if suggestion != "" {
			warning += fmt.Sprintf(", did you mean %q?", suggestion)
		}
		return warning, nil
	}
	if tmpl.IsNull() {
		return "", nil
	}

	if params, ok := tmpl.Get(KeyParameters); ok && !params.IsNull() {
		if !params.IsMapping() {
			return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "template parameters must be a mapping",
				map[string]interface{}{"template": name})
		}
		if err := MergeShallow(merged, Mapping().Set(KeyParameters, params)); err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to apply template parameters", err,
				map[string]interface{}{"model": modelKey, "template": name})
		}
	}

	bundles, ok := tmpl.Get(KeyResources)
	if !ok || bundles.IsNull() {
		return "", nil
	}
	if !bundles.IsMapping() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "template resources must be a mapping of size labels",
			map[string]interface{}{"template": name})
	}

	size := DefaultResourceSize
	explicitSize := false
	if sv, ok := override.Get(KeyResourceSize); ok && !sv.IsNull() {
		if !sv.IsScalar() {
			return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "resource_size must be a scalar",
				map[string]interface{}{"model": modelKey})
		}
		size = sv.Text()
		explicitSize = true
	}

	bundle, ok := bundles.Get(size)
	if !ok || bundle.IsNull() {
		slog.Debug("template has no resources for size",
			"model", modelKey,
			"template", name,
			"size", size,
		)
		if explicitSize && !ok {
			return fmt.Sprintf("template %q has no resource size %q", name, size), nil
		}
		return "", nil
	}
	if !bundle.IsMapping() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "template resource bundle must be a mapping",
			map[string]interface{}{"template": name, "size": size})
	}

	if err := MergeShallow(merged, Mapping().Set(KeyResources, bundle)); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to apply template resources", err,
			map[string]interface{}{"model": modelKey, "template": name})
	}
	return "", nil
}

// closestName returns the candidate nearest to name by edit distance, or ""
// when none is close enough to be a plausible typo.
func closestName(name string, candidates []string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
