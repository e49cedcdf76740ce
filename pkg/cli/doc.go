// Package cli implements the modelgen command-line interface.
//
// # Overview
//
// modelgen reads a YAML model catalogue and writes, per model, the files a
// repository needs to build and deploy a llama-server image: a Containerfile,
// Kubernetes manifests (a Deployment or Kustomize overlays, plus an optional
// Lightspeed overlay) and a flat KEY="value" configuration file. CI job
// stanzas are collected into the run summary and can be folded into an
// existing workflow file.
//
// # Usage
//
//	modelgen [--config FILE] [--repo-root DIR] [flags]
//
// There are no subcommands.
//
// # Flags
//
//	--config, -c       Configuration file (default: models/models.yaml)
//	--repo-root, -r    Repository root (default: .)
//	--k8s-mode         Force deployment or kustomize for every model
//	--update-workflow  Fold env lines and jobs into the workflow file
//	--workflow         Workflow file (default: .github/workflows/build-images.yml)
//	--checksums        Write checksums.txt
//	--dry-run          Render without writing
//	--summary          Write the run summary to FILE, or - for stdout
//	--format, -t       Summary format: yaml, json, table (default: yaml)
//	--metrics-file     Write Prometheus metrics in text format
//	--debug            Enable debug logging
//	--log-json         Output logs in JSON format
//	--help, -h         Show command help
//	--version, -v      Show version information
//
// The configuration and workflow paths are relative to the repository root
// unless absolute.
//
// # Environment Variables
//
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//	MODELGEN_*         Default for the matching flag, e.g. MODELGEN_REPO_ROOT
//
// # Exit Codes
//
//	0  Success
//	1  Configuration missing or invalid, or generation failed
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/ramalama-labs/modelgen/pkg/cli.version=1.0.0'"
package cli
