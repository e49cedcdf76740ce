package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ramalama-labs/modelgen/pkg/artifact/kubernetes"
	"github.com/ramalama-labs/modelgen/pkg/generator/result"
	"github.com/ramalama-labs/modelgen/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Without an explicit --format, a --summary file extension picks the format.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	if summary := cmd.String("summary"); !cmd.IsSet("format") && summary != serializer.StdoutURI {
		if f, ok := serializer.FormatFromPath(summary); ok {
			return f, nil
		}
	}

	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// parseK8sMode returns the forced Kubernetes mode, or "" to let each model
// choose through its k8s_mode key.
func parseK8sMode(cmd *cli.Command) (kubernetes.Mode, error) {
	s := cmd.String("k8s-mode")
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	mode, err := kubernetes.ParseMode(s)
	if err != nil {
		return "", fmt.Errorf("invalid --k8s-mode value %q, valid values are: %s",
			s, strings.Join(kubernetes.SupportedModes(), ", "))
	}
	return mode, nil
}

// resolvePath joins p to root unless p is absolute.
func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// printGenerated prints one line per generated or planned file.
func printGenerated(w io.Writer, out *result.Output) {
	verb := "Generated"
	if out.DryRun {
		verb = "Would generate"
	}
	for _, r := range out.Results {
		fmt.Fprintf(w, "Processing model: %s\n", r.Model)
		for _, f := range r.Files {
			fmt.Fprintf(w, "  %s: %s\n", verb, filepath.Join(out.RepoRoot, filepath.FromSlash(f)))
		}
	}
	if out.Checksums != "" {
		fmt.Fprintf(w, "  Generated: %s\n", filepath.Join(out.RepoRoot, out.Checksums))
	}
	if out.HasErrors() {
		fmt.Fprintln(w)
		for _, e := range out.Errors {
			fmt.Fprintf(w, "Warning: %s: %s\n", e.Model, e.Error)
		}
	}
}
