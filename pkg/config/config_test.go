package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramalama-labs/modelgen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) *Global {
	t.Helper()
	g, err := Parse([]byte(doc))
	require.NoError(t, err)
	return g
}

func mustResolve(t *testing.T, g *Global, key string) *Resolved {
	t.Helper()
	override, ok := g.Model(key)
	require.True(t, ok, "model %s not found", key)
	r, err := Resolve(key, override, g)
	require.NoError(t, err)
	return r
}

func TestDecode_PreservesOrderAndLiterals(t *testing.T) {
	v, err := Decode([]byte(`
zeta: 1
alpha: 1.0
mid: "0.70"
flag: true
nothing: ~
list: [a, 2]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid", "flag", "nothing", "list"}, v.Keys())

	alpha, _ := v.Get("alpha")
	assert.Equal(t, "1.0", alpha.Text())
	assert.Equal(t, TagFloat, alpha.tag)

	mid, _ := v.Get("mid")
	assert.Equal(t, "0.70", mid.Text())
	assert.Equal(t, TagString, mid.tag)

	flag, _ := v.Get("flag")
	assert.True(t, flag.Bool())

	nothing, ok := v.Get("nothing")
	assert.True(t, ok)
	assert.True(t, nothing.IsNull())

	list, _ := v.Get("list")
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []interface{}{"a", int64(2)}, list.Interface())
}

func TestDecode_MergeKeys(t *testing.T) {
	v, err := Decode([]byte(`
base: &base
  port: 8080
  host: 0.0.0.0
model:
  port: 9090
  <<: *base
`))
	require.NoError(t, err)

	model, _ := v.Get("model")
	assert.Equal(t, map[string]interface{}{"port": int64(9090), "host": "0.0.0.0"}, model.Interface())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("models: [unterminated"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))

	_, err = Decode([]byte("? [a, b]\n: value\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
}

func TestDecode_AliasExpansionIsBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}

	_, err := Decode([]byte(b.String()))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "too many nodes")

	// modest reuse of anchors stays well within the limit
	_, err = Decode([]byte("base: &b {port: 1}\nm1: *b\nm2: *b\nm3: {<<: *b, host: h}\n"))
	assert.NoError(t, err)
}

func TestParse_EmptyAndInvalidRoots(t *testing.T) {
	g, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, g.ModelKeys())

	_, err = Parse([]byte("- just\n- a list\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))

	_, err = Parse([]byte("models: [a, b]\n"))
	require.Error(t, err)

	_, err = Parse([]byte("templates:\n  broken: 42\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  b: {name: B}\n  a: {name: A}\n"), 0o600))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, g.ModelKeys())
}

func TestMergeShallow(t *testing.T) {
	dst, err := Decode([]byte(`
parameters: {ctx_size: 4096, temp: 0.7}
resources:
  requests: {memory: 4Gi, cpu: "2"}
maintainer: a
`))
	require.NoError(t, err)
	src, err := Decode([]byte(`
parameters: {temp: 0.9}
resources:
  requests: {memory: 8Gi}
maintainer: b
extra: [1]
`))
	require.NoError(t, err)

	require.NoError(t, MergeShallow(dst, src))

	want := map[string]interface{}{
		"parameters": map[string]interface{}{"ctx_size": int64(4096), "temp": 0.9},
		// one level deep: the requests mapping is replaced, not merged
		"resources":  map[string]interface{}{"requests": map[string]interface{}{"memory": "8Gi"}},
		"maintainer": "b",
		"extra":      []interface{}{int64(1)},
	}
	assert.Equal(t, want, dst.Interface())

	// dst must not alias src
	srcParams, _ := src.Get("parameters")
	srcParams.Set("temp", String("0.1"))
	dstParams, _ := dst.Get("parameters")
	temp, _ := dstParams.Get("temp")
	assert.Equal(t, "0.9", temp.Text())

	assert.Error(t, MergeShallow(String("x"), Mapping()))
}

func TestResolve_Precedence(t *testing.T) {
	g := mustParse(t, `
defaults:
  parameters:
    ctx_size: 4096
templates:
  tuned:
    parameters:
      ctx_size: 8192
      temp: 0.5
models:
  m:
    name: M
    template: tuned
    parameters:
      temp: 0.9
`)
	r := mustResolve(t, g, "m")

	assert.Equal(t, map[string]interface{}{"ctx_size": int64(8192), "temp": 0.9}, r.Parameters().Interface())
}

func TestResolve_ResourceSizeSelection(t *testing.T) {
	doc := `
templates:
  sized:
    resources:
      small:
        requests: {memory: 2Gi}
      large:
        requests: {memory: 16Gi}
models:
  big:
    name: Big
    template: sized
    resource_size: large
  default:
    name: Default
    template: sized
  missing:
    name: Missing
    template: sized
    resource_size: huge
`
	g := mustParse(t, doc)

	memory := func(r *Resolved) string {
		res, ok := r.Resources()
		if !ok {
			return ""
		}
		req, _ := res.Get("requests")
		mem, _ := req.Get("memory")
		return mem.Text()
	}

	big := mustResolve(t, g, "big")
	assert.Equal(t, "16Gi", memory(big))
	assert.Empty(t, big.Warnings())

	def := mustResolve(t, g, "default")
	assert.Equal(t, "2Gi", memory(def))
	assert.Empty(t, def.Warnings())

	// an unknown size label contributes nothing
	missing := mustResolve(t, g, "missing")
	_, ok := missing.Resources()
	assert.False(t, ok)
	assert.Equal(t, []string{`template "sized" has no resource size "huge"`}, missing.Warnings())
}

func TestResolve_DefaultSizeAbsentIsSilent(t *testing.T) {
	g := mustParse(t, `
templates:
  big-only:
    resources:
      large:
        requests: {memory: 16Gi}
models:
  a: {name: A, template: big-only}
`)
	r := mustResolve(t, g, "a")
	_, ok := r.Resources()
	assert.False(t, ok)
	assert.Empty(t, r.Warnings())
}

func TestResolve_DerivedFields(t *testing.T) {
	g := mustParse(t, `
models:
  "My Model! v1.0":
    name: Mine
  explicit:
    name: Explicit
    model_source: shared-source
    model_name_safe: ignored
    model_key: ignored
`)

	r := mustResolve(t, g, "My Model! v1.0")
	assert.Equal(t, "My Model! v1.0", r.Key())
	assert.Equal(t, "my-model-v1-0", r.SafeName())
	assert.Equal(t, "my-model-v1-0-source", r.Source())

	override, _ := g.Model("My Model! v1.0")
	assert.False(t, override.Has(KeyModelNameSafe), "input must not gain derived fields")
	assert.False(t, override.Has(KeyModelSource), "input must not gain derived fields")

	e := mustResolve(t, g, "explicit")
	assert.Equal(t, "shared-source", e.Source())
	assert.Equal(t, "explicit", e.SafeName())
	assert.Equal(t, "explicit", e.Key())
}

func TestResolve_DoesNotMutateGlobal(t *testing.T) {
	g := mustParse(t, `
defaults:
  parameters: {ctx_size: 4096}
templates:
  t:
    parameters: {temp: 0.5}
    resources:
      small:
        limits: {memory: 8Gi}
models:
  a:
    name: A
    template: t
    parameters: {ctx_size: 1}
    resources:
      limits: {cpu: "8"}
  b:
    name: B
`)
	before := g.Defaults()
	tmplBefore, _ := g.Template("t")
	tmplSnapshot := tmplBefore.Clone()

	mustResolve(t, g, "a")
	b := mustResolve(t, g, "b")

	assert.True(t, before.Equal(g.Defaults()))
	tmplAfter, _ := g.Template("t")
	assert.True(t, tmplSnapshot.Equal(tmplAfter))
	assert.Equal(t, map[string]interface{}{"ctx_size": int64(4096)}, b.Parameters().Interface())
}

func TestResolve_Deterministic(t *testing.T) {
	g := mustParse(t, `
defaults: {maintainer: x, parameters: {threads: 8}}
models:
  a: {name: A, parameters: {top_k: 10}}
`)
	first := mustResolve(t, g, "a")
	second := mustResolve(t, g, "a")
	assert.True(t, first.values.Equal(second.values))
}

func TestResolve_UnknownTemplateIsIgnored(t *testing.T) {
	g := mustParse(t, `
templates:
  llama: {parameters: {temp: 0.1}}
models:
  a: {name: A, template: lama}
`)
	r := mustResolve(t, g, "a")
	assert.Equal(t, 0, r.Parameters().Len())
	assert.Equal(t, []string{`unknown template "lama" ignored, did you mean "llama"?`}, r.Warnings())
}

func TestResolve_UnknownTemplateWithoutSuggestion(t *testing.T) {
	g := mustParse(t, `
templates:
  llama: {}
models:
  a: {name: A, template: mistral-instruct}
`)
	r := mustResolve(t, g, "a")
	assert.Equal(t, []string{`unknown template "mistral-instruct" ignored`}, r.Warnings())
}

func TestResolve_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"scalar model", "models:\n  a: 42\n"},
		{"scalar parameters", "models:\n  a: {name: A, parameters: 5}\n"},
		{"scalar template parameters", "templates:\n  t: {parameters: 5}\nmodels:\n  a: {name: A, template: t}\n"},
		{"scalar template resources", "templates:\n  t: {resources: big}\nmodels:\n  a: {name: A, template: t}\n"},
		{"scalar resource bundle", "templates:\n  t: {resources: {small: 1}}\nmodels:\n  a: {name: A, template: t}\n"},
		{"list template reference", "models:\n  a: {name: A, template: [x]}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.doc)
			override, _ := g.Model("a")
			_, err := Resolve("a", override, g)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
		})
	}
}

func TestResolved_Name(t *testing.T) {
	g := mustParse(t, "models:\n  ok: {name: Fine}\n  missing: {description: x}\n  nested: {name: {a: b}}\n")

	name, err := mustResolve(t, g, "ok").Name()
	require.NoError(t, err)
	assert.Equal(t, "Fine", name)

	_, err = mustResolve(t, g, "missing").Name()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))

	_, err = mustResolve(t, g, "nested").Name()
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig))
}

func TestClosestName(t *testing.T) {
	candidates := []string{"llama", "granite", "qwen"}

	assert.Equal(t, "llama", closestName("lama", candidates))
	assert.Equal(t, "granite", closestName("granit", candidates))
	assert.Equal(t, "", closestName("completely-different", candidates))
	assert.Equal(t, "", closestName("x", nil))
}
