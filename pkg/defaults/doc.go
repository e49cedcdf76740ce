// Package defaults provides centralized constants for modelgen.
//
// Every value a renderer falls back to when the merged model configuration
// does not set it is defined here once, so the Containerfile, Kubernetes and
// flat-config renderers agree on them.
//
// # Categories
//
//   - Paths: configuration file, workflow file and output directories
//   - Image: registry path, serve command, non-root user
//   - Server parameters: llama-server flags (port, context size, sampling)
//   - Resources: request and limit quantities
//
// # Usage
//
//	import "github.com/ramalama-labs/modelgen/pkg/defaults"
//
//	port := params.String("port", defaults.Port)
package defaults
