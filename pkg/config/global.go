package config

import (
	"github.com/ramalama-labs/modelgen/pkg/errors"
)

// Top-level sections of the configuration document.
const (
	SectionDefaults  = "defaults"
	SectionTemplates = "templates"
	SectionModels    = "models"
)

// Global is the whole configuration document. It is read-only once built.
type Global struct {
	defaults  *Value
	templates *Value
	models    *Value
}

// NewGlobal validates the top-level shape of root and wraps it.
// A null root or null sections are treated as absent.
func NewGlobal(root *Value) (*Global, error) {
	if root.IsNull() {
		root = Mapping()
	}
	if !root.IsMapping() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"configuration root must be a mapping", map[string]interface{}{"kind": root.Kind().String()})
	}

	g := &Global{}
	var err error
	if g.defaults, err = section(root, SectionDefaults); err != nil {
		return nil, err
	}
	if g.templates, err = section(root, SectionTemplates); err != nil {
		return nil, err
	}
	if g.models, err = section(root, SectionModels); err != nil {
		return nil, err
	}

	for _, name := range g.templates.Keys() {
		tmpl, _ := g.templates.Get(name)
		if !tmpl.IsMapping() && !tmpl.IsNull() {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig,
				"template must be a mapping", map[string]interface{}{"template": name, "kind": tmpl.Kind().String()})
		}
	}

	return g, nil
}

func section(root *Value, name string) (*Value, error) {
	v, ok := root.Get(name)
	if !ok || v.IsNull() {
		return Mapping(), nil
	}
	if !v.IsMapping() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"section must be a mapping", map[string]interface{}{"section": name, "kind": v.Kind().String()})
	}
	return v, nil
}

// Defaults returns a deep copy of the defaults section.
func (g *Global) Defaults() *Value {
	return g.defaults.Clone()
}

// Template returns the named template.
func (g *Global) Template(name string) (*Value, bool) {
	return g.templates.Get(name)
}

// TemplateNames returns template names in document order.
func (g *Global) TemplateNames() []string {
	return g.templates.Keys()
}

// ModelKeys returns model keys in document order.
func (g *Global) ModelKeys() []string {
	return g.models.Keys()
}

// Model returns the override mapping of a model.
func (g *Global) Model(key string) (*Value, bool) {
	return g.models.Get(key)
}
