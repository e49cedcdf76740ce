package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/ramalama-labs/modelgen/pkg/generator/result"
)

// FileWriter writes files under a root directory and records them in a Result.
type FileWriter struct {
	root   string
	result *result.Result
}

// NewFileWriter creates a file writer for root tracking into res.
func NewFileWriter(root string, res *result.Result) *FileWriter {
	return &FileWriter{
		root:   root,
		result: res,
	}
}

// WriteFile writes content to rel, a slash-separated path relative to the
// root, overwriting any existing file, and records it in the result.
func (w *FileWriter) WriteFile(rel string, content []byte, perm os.FileMode) error {
	path := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.WriteFile(path, content, perm); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write file", err,
			map[string]interface{}{"path": path})
	}

	w.result.AddFile(rel, int64(len(content)))

	slog.Debug("file written",
		"path", path,
		"size_bytes", len(content),
		"permissions", perm,
	)

	return nil
}

// DirectoryManager creates output directories.
type DirectoryManager struct{}

// NewDirectoryManager creates a new directory manager.
func NewDirectoryManager() *DirectoryManager {
	return &DirectoryManager{}
}

// CreateDirectories creates dirs and their parents. Existing directories
// are not an error.
func (m *DirectoryManager) CreateDirectories(dirs []string, perm os.FileMode) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, perm); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInternal, "failed to create directory", err,
				map[string]interface{}{"path": dir})
		}
	}
	return nil
}

// ContextChecker provides context cancellation checking.
type ContextChecker struct{}

// NewContextChecker creates a new context checker.
func NewContextChecker() *ContextChecker {
	return &ContextChecker{}
}

// Check returns a TIMEOUT error if ctx is done.
func (c *ContextChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeTimeout, "generation cancelled", ctx.Err())
	default:
		return nil
	}
}

// ComputeChecksum computes the SHA256 checksum of the given content.
func ComputeChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ChecksumGenerator builds a sha256sum-compatible listing of generated files.
type ChecksumGenerator struct {
	root string
}

// NewChecksumGenerator creates a checksum generator for files under root.
func NewChecksumGenerator(root string) *ChecksumGenerator {
	return &ChecksumGenerator{
		root: root,
	}
}

// Generate returns the checksums file content for files, given as
// slash-separated paths relative to the root. Files are read back from disk.
func (g *ChecksumGenerator) Generate(runID string, files []string) (string, error) {
	var content bytes.Buffer
	content.WriteString("# modelgen checksums (SHA256)\n")
	content.WriteString(fmt.Sprintf("# Run: %s\n\n", runID))

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(g.root, filepath.FromSlash(rel)))
		if err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeInternal, "failed to read file for checksum", err,
				map[string]interface{}{"path": rel})
		}
		content.WriteString(fmt.Sprintf("%s  %s\n", ComputeChecksum(data), rel))
	}

	return content.String(), nil
}
