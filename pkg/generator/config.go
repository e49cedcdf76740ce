package generator

import (
	"github.com/ramalama-labs/modelgen/pkg/artifact/kubernetes"
	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
)

// Config controls a generation run. It is immutable after creation.
type Config struct {
	repoRoot         string
	k8sMode          kubernetes.Mode
	dryRun           bool
	includeChecksums bool
	version          string
}

// Option configures a Config.
type Option func(*Config)

// WithRepoRoot sets the directory artifacts are written under.
func WithRepoRoot(dir string) Option {
	return func(c *Config) {
		c.repoRoot = dir
	}
}

// WithK8sMode forces the Kubernetes mode of every model. An empty mode
// keeps the per-model k8s_mode.
func WithK8sMode(mode kubernetes.Mode) Option {
	return func(c *Config) {
		c.k8sMode = mode
	}
}

// WithDryRun plans and validates without writing files.
func WithDryRun(dryRun bool) Option {
	return func(c *Config) {
		c.dryRun = dryRun
	}
}

// WithIncludeChecksums writes checksums.txt over the generated files.
func WithIncludeChecksums(include bool) Option {
	return func(c *Config) {
		c.includeChecksums = include
	}
}

// WithVersion records the generator version in the run output.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.version = version
	}
}

// NewConfig creates a Config with defaults applied, then opts.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		repoRoot: defaults.RepoRoot,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RepoRoot returns the output root directory.
func (c *Config) RepoRoot() string { return c.repoRoot }

// K8sMode returns the forced Kubernetes mode, or "".
func (c *Config) K8sMode() kubernetes.Mode { return c.k8sMode }

// DryRun reports whether writes are skipped.
func (c *Config) DryRun() bool { return c.dryRun }

// IncludeChecksums reports whether checksums.txt is written.
func (c *Config) IncludeChecksums() bool { return c.includeChecksums }

// Version returns the generator version.
func (c *Config) Version() string { return c.version }

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.repoRoot == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "repository root must not be empty")
	}
	if c.k8sMode != "" {
		if _, err := kubernetes.ParseMode(string(c.k8sMode)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid kubernetes mode", err)
		}
	}
	return nil
}
