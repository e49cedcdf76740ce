package artifact

import "sync"

// Registry holds file renderers in registration order.
type Registry struct {
	renderers map[Kind]Renderer
	order     []Kind

	mu sync.RWMutex
}

// NewRegistry creates a Registry holding the given renderers, in order.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{
		renderers: make(map[Kind]Renderer, len(renderers)),
	}
	for _, rd := range renderers {
		r.Register(rd)
	}
	return r
}

// Register adds a renderer. Registering a kind again replaces the renderer
// but keeps its original position.
func (r *Registry) Register(rd Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[rd.Kind()]; !ok {
		r.order = append(r.order, rd.Kind())
	}
	r.renderers[rd.Kind()] = rd
}

// All returns the registered renderers in registration order.
func (r *Registry) All() []Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Renderer, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.renderers[k])
	}
	return out
}

// List returns the registered kinds in registration order.
func (r *Registry) List() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, len(r.order))
	copy(kinds, r.order)
	return kinds
}
