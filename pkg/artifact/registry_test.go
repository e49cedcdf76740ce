package artifact

import (
	"testing"

	"github.com/ramalama-labs/modelgen/pkg/config"
)

type stubRenderer struct {
	kind Kind
	tag  string
}

func (s *stubRenderer) Kind() Kind { return s.kind }

func (s *stubRenderer) Render(_ *config.Resolved) ([]File, error) {
	return []File{{Path: s.tag, Kind: s.kind}}, nil
}

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry(
		&stubRenderer{kind: KindFlatConfig},
		&stubRenderer{kind: KindContainerfile},
	)

	kinds := r.List()
	if len(kinds) != 2 || kinds[0] != KindFlatConfig || kinds[1] != KindContainerfile {
		t.Errorf("List() = %v, want registration order", kinds)
	}

	r.Register(&stubRenderer{kind: KindFlatConfig, tag: "replaced"})
	if len(r.List()) != 2 {
		t.Errorf("List() = %v, want 2 kinds", r.List())
	}
	all := r.All()
	files, _ := all[0].Render(nil)
	if files[0].Path != "replaced" {
		t.Errorf("re-registered renderer did not keep its position")
	}
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	if len(r.All()) != 0 || len(r.List()) != 0 {
		t.Fatal("new registry should be empty")
	}

	r.Register(&stubRenderer{kind: KindKubernetes, tag: "k8s"})
	all := r.All()
	if len(all) != 1 || all[0].Kind() != KindKubernetes {
		t.Errorf("All() = %v, want the kubernetes renderer", r.List())
	}
}
