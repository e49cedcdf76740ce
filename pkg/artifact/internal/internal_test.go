package internal

import (
	"testing"

	"github.com/ramalama-labs/modelgen/pkg/config"
	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, doc, key string) *config.Resolved {
	t.Helper()
	g, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	override, ok := g.Model(key)
	require.True(t, ok)
	r, err := config.Resolve(key, override, g)
	require.NoError(t, err)
	return r
}

func TestResolveServerParams_Defaults(t *testing.T) {
	m := resolve(t, "models:\n  tiny: {name: Tiny}\n", "tiny")

	want := ServerParams{
		Port:       "8080",
		ModelFile:  "/models/model.gguf",
		CtxSize:    "4096",
		Temp:       "0.7",
		CacheReuse: "256",
		Threads:    "14",
		TopK:       "40",
		TopP:       "0.9",
		MinP:       "0",
		Host:       "0.0.0.0",
	}
	assert.Equal(t, want, ResolveServerParams(m))
}

func TestResolveServerParams_Overrides(t *testing.T) {
	m := resolve(t, `
models:
  tiny:
    name: Tiny
    model_file: /models/tiny.gguf
    parameters:
      port: 9000
      temp: 1.0
      host: ~
      threads: [1]
`, "tiny")

	p := ResolveServerParams(m)
	assert.Equal(t, "9000", p.Port)
	assert.Equal(t, "1.0", p.Temp)
	assert.Equal(t, "/models/tiny.gguf", p.ModelFile)
	assert.Equal(t, "0.0.0.0", p.Host, "null falls back to the default")
	assert.Equal(t, "14", p.Threads, "non-scalar falls back to the default")
}

func TestImage(t *testing.T) {
	m := resolve(t, "models:\n  Llama 3B: {name: L}\n", "Llama 3B")
	image, err := Image(m)
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/kush-gupt/llama-3b-ramalama:latest", image)

	repo, err := ImageRepository(m)
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/kush-gupt/llama-3b-ramalama", repo)

	m = resolve(t, "defaults: {registry_path: quay.io/acme/}\nmodels:\n  a: {name: A}\n", "a")
	image, err = Image(m)
	require.NoError(t, err)
	assert.Equal(t, "quay.io/acme/a-ramalama:latest", image)

	m = resolve(t, "defaults: {registry_path: \"Bad Registry\"}\nmodels:\n  a: {name: A}\n", "a")
	_, err = Image(m)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
}

func TestLightspeed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		enabled bool
		ns      string
	}{
		{"absent", "models:\n  a: {name: A}\n", false, ""},
		{"disabled", "models:\n  a: {name: A, lightspeed: {enabled: false}}\n", false, ""},
		{"default namespace", "models:\n  a: {name: A, lightspeed: {enabled: true}}\n", true, "openshift-lightspeed"},
		{"custom namespace", "models:\n  a: {name: A, lightspeed: {enabled: true, namespace: ols}}\n", true, "ols"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled, ns := Lightspeed(resolve(t, tt.doc, "a"))
			assert.Equal(t, tt.enabled, enabled)
			assert.Equal(t, tt.ns, ns)
		})
	}
}

func TestQuoteDouble(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`$HOME`, `"\$HOME"`},
		{"a\\b", `"a\\b"`},
		{"two\nlines", `"two\nlines"`},
		{"", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteDouble(tt.in))
		})
	}
}

func TestShellNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4096", "4096"},
		{"0.7", "0.7"},
		{"-1", "-1"},
		{"1e-3", "1e-3"},
		{"0.7; id", `"0.7; id"`},
		{"$(reboot)", `"\$(reboot)"`},
		{"", `""`},
		{"1.", `"1."`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellNumber(tt.in))
		})
	}
}

func TestTemplateRenderer(t *testing.T) {
	getter := NewTemplateGetter(map[string]string{
		"plain":  "hello {{ .Name }} {{ quote .Name }}",
		"square": "${{ x }} [[ .Name ]]",
		"broken": "{{ .Name ",
	})

	r := NewTemplateRenderer(getter)
	out, err := r.Render("plain", map[string]string{"Name": "world"})
	require.NoError(t, err)
	assert.Equal(t, `hello world "world"`, out)

	_, err = r.Render("missing", nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = r.Render("broken", nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))

	_, err = r.Render("plain", map[string]string{})
	assert.Error(t, err, "missing keys must fail")

	sq := NewTemplateRenderer(getter, WithDelims("[[", "]]"))
	out, err = sq.Render("square", map[string]string{"Name": "job"})
	require.NoError(t, err)
	assert.Equal(t, "${{ x }} job", out)
}
