// Package internal provides helpers shared by the artifact renderers:
// embedded template lookup and rendering, the render-time defaults of the
// llama-server parameters, image reference construction and string escaping.
//
// It is internal to the artifact packages and should not be imported
// elsewhere.
//
// # Templates
//
// Renderers embed their templates and expose them through NewTemplateGetter:
//
//	//go:embed templates/Containerfile.tmpl
//	var containerfileTemplate string
//
//	var GetTemplate = internal.NewTemplateGetter(map[string]string{
//	    "Containerfile": containerfileTemplate,
//	})
//
// TemplateRenderer executes them with missingkey=error, so a template slot
// without data fails the render instead of printing "<no value>".
//
// # Server Parameters
//
// ResolveServerParams reads the merged parameters mapping and applies the
// defaults from the defaults package for anything unset. Every renderer that
// prints a parameter goes through it.
package internal
