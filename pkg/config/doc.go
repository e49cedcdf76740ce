// Package config loads the model configuration document and resolves the
// merged configuration of each model.
//
// # Document Layout
//
//	defaults:             # applied to every model
//	  maintainer: team@example.com
//	  registry_path: ghcr.io/example
//	  parameters:
//	    ctx_size: 4096
//	templates:            # opt-in bundles
//	  llama:
//	    parameters:
//	      temp: 0.6
//	    resources:
//	      small:
//	        requests: {memory: 2Gi}
//	      large:
//	        requests: {memory: 16Gi}
//	models:               # processed in document order
//	  tinyllama:
//	    name: TinyLlama
//	    template: llama
//	    resource_size: large
//
// # Value Tree
//
// The document is decoded into Value, a tagged variant (null, scalar, list,
// mapping). Scalars keep their literal text and YAML tag; mappings keep key
// order so models are generated in the order they were declared.
//
// # Merging
//
// Resolve applies, lowest precedence first:
//
//  1. a deep copy of defaults
//  2. the template's parameters and resources[resource_size] ("small" when unset)
//  3. the model's own keys
//
// Every step uses MergeShallow: mappings merge one level deep, everything
// else is replaced. The result always carries model_key, model_name_safe
// and model_source (defaulting to "<model_name_safe>-source").
package config
