package config

import (
	"github.com/ramalama-labs/modelgen/pkg/errors"
)

// KeyName is the one field every model must declare.
const KeyName = "name"

// Resolved is the merged configuration of exactly one model.
type Resolved struct {
	values   *Value
	warnings []string
}

// Warnings returns the non-fatal problems found while resolving the model,
// such as a reference to an unknown template.
func (r *Resolved) Warnings() []string {
	return r.warnings
}

// Key returns the original model key.
func (r *Resolved) Key() string {
	return r.String(KeyModelKey, "")
}

// SafeName returns the sanitized model name used in every artifact name.
func (r *Resolved) SafeName() string {
	return r.String(KeyModelNameSafe, "")
}

// Source returns the model source stage name.
func (r *Resolved) Source() string {
	return r.String(KeyModelSource, "")
}

// Name returns the required display name of the model.
func (r *Resolved) Name() (string, error) {
	v, ok := r.values.Get(KeyName)
	if !ok || v.IsNull() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "model is missing required field \"name\"",
			map[string]interface{}{"model": r.Key()})
	}
	if !v.IsScalar() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidConfig, "model field \"name\" must be a scalar",
			map[string]interface{}{"model": r.Key()})
	}
	return v.Text(), nil
}

// Get returns a top-level value.
func (r *Resolved) Get(key string) (*Value, bool) {
	return r.values.Get(key)
}

// Has reports whether a non-null top-level value is set.
func (r *Resolved) Has(key string) bool {
	v, ok := r.values.Get(key)
	return ok && !v.IsNull()
}

// String returns the literal text of a top-level scalar, or def when the key
// is absent, null or not a scalar.
func (r *Resolved) String(key, def string) string {
	v, ok := r.values.Get(key)
	if !ok || !v.IsScalar() {
		return def
	}
	return v.Text()
}

// Section returns a top-level mapping, or an empty mapping when absent.
func (r *Resolved) Section(key string) *Value {
	v, ok := r.values.Get(key)
	if !ok || !v.IsMapping() {
		return Mapping()
	}
	return v
}

// Parameters returns the parameters mapping, empty when absent.
func (r *Resolved) Parameters() *Value {
	return r.Section(KeyParameters)
}

// Resources returns the resources mapping and whether it is present and non-empty.
func (r *Resolved) Resources() (*Value, bool) {
	v := r.Section(KeyResources)
	return v, v.Len() > 0
}

