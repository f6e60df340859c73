package adapter

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Registry maps protocol versions to handlers. It is immutable once
// built, so lookups need no locking.
type Registry struct {
	handlers map[string]Handler
	versions goversion.Collection
}

// NewRegistry indexes handlers by version. Versions are compared
// semantically, so "1.0" and "1.0.0" collide.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{handlers: map[string]Handler{}}
	for _, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("registry: nil handler")
		}
		v, err := goversion.NewVersion(h.Version())
		if err != nil {
			return nil, fmt.Errorf("registry: handler version %q: %w", h.Version(), err)
		}
		key := v.String()
		if existing, ok := r.handlers[key]; ok {
			return nil, fmt.Errorf("registry: version %q already registered by %q", h.Version(), existing.Version())
		}
		r.handlers[key] = h
		r.versions = append(r.versions, v)
	}
	sort.Sort(r.versions)
	return r, nil
}

// Lookup returns the handler for version.
func (r *Registry) Lookup(version string) (Handler, error) {
	v, err := goversion.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("registry: invalid version %q: %w", version, err)
	}
	h, ok := r.handlers[v.String()]
	if !ok {
		return nil, fmt.Errorf("registry: unsupported version %q (supported: %v)", version, r.Versions())
	}
	return h, nil
}

// Versions lists the registered versions in ascending order, as the
// handlers spell them.
func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.versions))
	for _, v := range r.versions {
		out = append(out, r.handlers[v.String()].Version())
	}
	return out
}

// Negotiate picks the highest version offered by a plugin that the
// registry also supports. Unparsable offers are skipped.
func (r *Registry) Negotiate(offered []string) (Handler, error) {
	var best *goversion.Version
	for _, o := range offered {
		v, err := goversion.NewVersion(o)
		if err != nil {
			continue
		}
		if _, ok := r.handlers[v.String()]; !ok {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return nil, fmt.Errorf("registry: no common version between %v and %v", offered, r.Versions())
	}
	return r.handlers[best.String()], nil
}
