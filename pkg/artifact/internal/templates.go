package internal

import (
	"bytes"
	"text/template"

	"github.com/ramalama-labs/modelgen/pkg/errors"
)

// TemplateFunc retrieves template content by name.
type TemplateFunc func(name string) (string, bool)

// NewTemplateGetter creates a TemplateFunc from a map of template names to content.
func NewTemplateGetter(templates map[string]string) TemplateFunc {
	return func(name string) (string, bool) {
		tmpl, ok := templates[name]
		return tmpl, ok
	}
}

// TemplateRenderer renders named templates from a TemplateFunc.
type TemplateRenderer struct {
	templateGetter TemplateFunc
	funcs          template.FuncMap
	leftDelim      string
	rightDelim     string
}

// TemplateOption configures a TemplateRenderer.
type TemplateOption func(*TemplateRenderer)

// WithDelims sets the action delimiters. Used by templates whose output
// itself contains "{{".
func WithDelims(left, right string) TemplateOption {
	return func(r *TemplateRenderer) {
		r.leftDelim = left
		r.rightDelim = right
	}
}

// NewTemplateRenderer creates a new template renderer with the given template getter.
func NewTemplateRenderer(getter TemplateFunc, opts ...TemplateOption) *TemplateRenderer {
	r := &TemplateRenderer{
		templateGetter: getter,
		funcs: template.FuncMap{
			"quote":  QuoteDouble,
			"number": ShellNumber,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders a template with the given data.
func (r *TemplateRenderer) Render(name string, data interface{}) (string, error) {
	tmplContent, ok := r.templateGetter(name)
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeNotFound, "template not found",
			map[string]interface{}{"template": name})
	}

	tmpl, err := template.New(name).
		Delims(r.leftDelim, r.rightDelim).
		Funcs(r.funcs).
		Option("missingkey=error").
		Parse(tmplContent)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to parse template", err,
			map[string]interface{}{"template": name})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to execute template", err,
			map[string]interface{}{"template": name})
	}

	return buf.String(), nil
}
