package workflow

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/ramalama-labs/modelgen/pkg/defaults"
	"github.com/ramalama-labs/modelgen/pkg/errors"
)

var (
	suffixLine = regexp.MustCompile(`(?m)^[ \t]*APP_IMAGE\S*_NAME_SUFFIX:.*\n`)
	jobHeader  = regexp.MustCompile(`(?m)^  ([A-Za-z0-9_-]+):[ \t]*$`)
)

// Result describes what an update changed.
type Result struct {
	Path        string   `json:"path" yaml:"path"`
	Backup      string   `json:"backup,omitempty" yaml:"backup,omitempty"`
	EnvAdded    []string `json:"envAdded,omitempty" yaml:"envAdded,omitempty"`
	JobsAdded   []string `json:"jobsAdded,omitempty" yaml:"jobsAdded,omitempty"`
	EnvAnchored bool     `json:"envAnchored" yaml:"envAnchored"`
	Skipped     bool     `json:"skipped" yaml:"skipped"`
	SkipReason  string   `json:"skipReason,omitempty" yaml:"skipReason,omitempty"`
}

// Updater rewrites a pipeline definition file in place.
type Updater struct {
	path string
}

// NewUpdater creates an Updater for the pipeline definition at path.
func NewUpdater(path string) *Updater {
	return &Updater{path: path}
}

// Path returns the pipeline definition path.
func (u *Updater) Path() string {
	return u.path
}

// BackupPath returns where the original file is copied before rewriting.
func (u *Updater) BackupPath() string {
	return u.path + defaults.WorkflowBackupSuffix
}

// Update inserts envLines and appends stanzas. A missing file is logged
// and reported as skipped, not returned as an error.
func (u *Updater) Update(envLines, stanzas []string) (*Result, error) {
	res := &Result{Path: u.path}

	data, err := os.ReadFile(u.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("workflow file not found", "path", u.path)
			res.Skipped = true
			res.SkipReason = "workflow file not found"
			return res, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read workflow", err,
			map[string]interface{}{"path": u.path})
	}

	info, err := os.Stat(u.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to stat workflow", err)
	}

	if err := os.WriteFile(u.BackupPath(), data, info.Mode().Perm()); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to write workflow backup", err,
			map[string]interface{}{"path": u.BackupPath()})
	}
	res.Backup = u.BackupPath()

	content := string(data)
	content, res.EnvAdded, res.EnvAnchored = insertEnv(content, envLines)
	if !res.EnvAnchored && len(res.EnvAdded) > 0 {
		slog.Warn("no APP_IMAGE name suffix line found, env lines not inserted", "path", u.path)
		res.EnvAdded = nil
	}
	content, res.JobsAdded = appendJobs(content, stanzas)

	if err := os.WriteFile(u.path, []byte(content), info.Mode().Perm()); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to write workflow", err,
			map[string]interface{}{"path": u.path})
	}

	slog.Info("workflow updated",
		"path", u.path,
		"backup", res.Backup,
		"env_added", len(res.EnvAdded),
		"jobs_added", len(res.JobsAdded),
	)
	return res, nil
}

// insertEnv places the new lines after the last suffix line. Lines already
// present anywhere in content are dropped.
func insertEnv(content string, lines []string) (string, []string, bool) {
	var fresh []string
	for _, l := range lines {
		if !hasLine(content, l) {
			fresh = append(fresh, l)
		}
	}

	matches := suffixLine.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, fresh, false
	}
	if len(fresh) == 0 {
		return content, nil, true
	}

	at := matches[len(matches)-1][1]
	block := strings.Join(fresh, "\n") + "\n"
	return content[:at] + block + content[at:], fresh, true
}

func appendJobs(content string, stanzas []string) (string, []string) {
	existing := make(map[string]bool)
	for _, m := range jobHeader.FindAllStringSubmatch(content, -1) {
		existing[m[1]] = true
	}

	var (
		fresh []string
		ids   []string
	)
	for _, s := range stanzas {
		id := jobID(s)
		if id != "" && existing[id] {
			slog.Debug("job already present", "job", id)
			continue
		}
		fresh = append(fresh, strings.TrimRight(s, "\n"))
		ids = append(ids, id)
	}
	if len(fresh) == 0 {
		return content, nil
	}

	return strings.TrimRight(content, " \t\r\n") + "\n" + strings.Join(fresh, "\n\n") + "\n", ids
}

// jobID returns the job key on the first non-blank line of a stanza.
func jobID(stanza string) string {
	for _, line := range strings.Split(stanza, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := jobHeader.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		return ""
	}
	return ""
}

func hasLine(content, line string) bool {
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimRight(l, "\r") == line {
			return true
		}
	}
	return false
}
