package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseWorkflow = `name: Build
env:
  REGISTRY: ghcr.io
  APP_IMAGE_A_NAME_SUFFIX: a-ramalama
  APP_IMAGE_B_NAME_SUFFIX: b-ramalama
  OTHER: x
jobs:
  build-app-image-a:
    runs-on: ubuntu-latest

`

const stanzaC = "  build-app-image-c:\n    runs-on: ubuntu-latest\n"

func writeWorkflow(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build-images.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdate(t *testing.T) {
	path := writeWorkflow(t, baseWorkflow)
	u := NewUpdater(path)

	res, err := u.Update([]string{"  APP_IMAGE_C_NAME_SUFFIX: c-ramalama"}, []string{stanzaC})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `name: Build
env:
  REGISTRY: ghcr.io
  APP_IMAGE_A_NAME_SUFFIX: a-ramalama
  APP_IMAGE_B_NAME_SUFFIX: b-ramalama
  APP_IMAGE_C_NAME_SUFFIX: c-ramalama
  OTHER: x
jobs:
  build-app-image-a:
    runs-on: ubuntu-latest
  build-app-image-c:
    runs-on: ubuntu-latest
`
	assert.Equal(t, want, string(got))
	assert.True(t, res.EnvAnchored)
	assert.Equal(t, []string{"build-app-image-c"}, res.JobsAdded)

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, baseWorkflow, string(backup))
	assert.Equal(t, path+".backup", res.Backup)
}

func TestUpdate_Idempotent(t *testing.T) {
	path := writeWorkflow(t, baseWorkflow)
	u := NewUpdater(path)
	env := []string{"  APP_IMAGE_C_NAME_SUFFIX: c-ramalama"}

	_, err := u.Update(env, []string{stanzaC})
	require.NoError(t, err)
	first, _ := os.ReadFile(path)

	res, err := u.Update(env, []string{stanzaC})
	require.NoError(t, err)
	second, _ := os.ReadFile(path)

	assert.Equal(t, string(first), string(second))
	assert.Empty(t, res.EnvAdded)
	assert.Empty(t, res.JobsAdded)
}

func TestUpdate_MultipleJobs(t *testing.T) {
	path := writeWorkflow(t, "jobs:\n  existing:\n    x: 1\n")
	stanzaD := "  build-app-image-d:\n    runs-on: ubuntu-latest"

	res, err := NewUpdater(path).Update(nil, []string{stanzaC, stanzaD})
	require.NoError(t, err)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "jobs:\n  existing:\n    x: 1\n"+
		"  build-app-image-c:\n    runs-on: ubuntu-latest\n\n"+
		"  build-app-image-d:\n    runs-on: ubuntu-latest\n", string(got))
	assert.Equal(t, []string{"build-app-image-c", "build-app-image-d"}, res.JobsAdded)
}

func TestUpdate_NoAnchor(t *testing.T) {
	path := writeWorkflow(t, "jobs:\n")

	res, err := NewUpdater(path).Update([]string{"  APP_IMAGE_C_NAME_SUFFIX: c-ramalama"}, nil)
	require.NoError(t, err)
	assert.False(t, res.EnvAnchored)
	assert.Empty(t, res.EnvAdded)

	got, _ := os.ReadFile(path)
	assert.Equal(t, "jobs:\n", string(got))
}

func TestUpdate_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")

	res, err := NewUpdater(path).Update([]string{"x"}, []string{stanzaC})
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	_, err = os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(err))
}

func TestJobID(t *testing.T) {
	assert.Equal(t, "build-app-image-c", jobID("\n"+stanzaC))
	assert.Equal(t, "", jobID("not a job"))
	assert.Equal(t, "", jobID(""))
}
