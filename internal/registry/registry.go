// Package registry is the catalog of visualization modules. Each module
// pairs an embedded YAML config (steps and quiz) with a render factory.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/vizlearn/internal/viz"
)

// ErrUnknownSlug is returned when no module has the requested slug.
var ErrUnknownSlug = errors.New("unknown visualization")

type registry struct {
	entries    []Entry
	bySlug     map[string]int
	byCategory map[string][]int

	group    singleflight.Group
	mu       sync.RWMutex
	resolved map[string]viz.Renderer
}

// r is the package-level registry singleton, built from embedded content.
var r *registry

func init() {
	reg, err := build(builtinModules, builtinContent)
	if err != nil {
		panic(fmt.Sprintf("registry: built-in content is invalid: %v", err))
	}
	r = reg
}

// build loads content from fsys and joins it with the module table, in
// table order.
func build(modules []module, fsys fs.FS) (*registry, error) {
	content, err := loadContent(fsys)
	if err != nil {
		return nil, err
	}
	if err := validateModules(modules, content); err != nil {
		return nil, err
	}

	reg := &registry{
		bySlug:     make(map[string]int, len(modules)),
		byCategory: make(map[string][]int),
		resolved:   make(map[string]viz.Renderer, len(modules)),
	}
	for i, m := range modules {
		c := content[m.slug]
		reg.entries = append(reg.entries, Entry{Config: c, Render: m.render})
		reg.bySlug[m.slug] = i
		reg.byCategory[c.Category] = append(reg.byCategory[c.Category], i)
	}
	return reg, nil
}

func (reg *registry) config(slug string) (Config, bool) {
	i, ok := reg.bySlug[slug]
	if !ok {
		return Config{}, false
	}
	return reg.entries[i].Config, true
}

func (reg *registry) resolve(slug string) viz.Renderer {
	i, ok := reg.bySlug[slug]
	if !ok {
		return nil
	}

	reg.mu.RLock()
	rd, ok := reg.resolved[slug]
	reg.mu.RUnlock()
	if ok {
		return rd
	}

	v, _, _ := reg.group.Do(slug, func() (any, error) {
		reg.mu.RLock()
		rd, ok := reg.resolved[slug]
		reg.mu.RUnlock()
		if ok {
			return rd, nil
		}
		rd = reg.entries[i].Render()
		reg.mu.Lock()
		reg.resolved[slug] = rd
		reg.mu.Unlock()
		return rd, nil
	})
	rd, _ = v.(viz.Renderer)
	return rd
}

// GetConfigBySlug returns the config for slug, or false if there is none.
func GetConfigBySlug(slug string) (Config, bool) {
	return r.config(slug)
}

// Lookup is GetConfigBySlug with an error for unknown slugs.
func Lookup(slug string) (Config, error) {
	c, ok := r.config(slug)
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownSlug, slug)
	}
	return c, nil
}

// GetAllConfigs returns every module's config in registration order.
func GetAllConfigs() []Config {
	out := make([]Config, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Config
	}
	return out
}

// GetAllSlugs returns every slug in registration order.
func GetAllSlugs() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Config.Slug
	}
	return out
}

// ByCategory returns the configs in category, in registration order.
func ByCategory(category string) []Config {
	idx := r.byCategory[category]
	out := make([]Config, len(idx))
	for i, j := range idx {
		out[i] = r.entries[j].Config
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories() []string {
	var out []string
	for _, e := range r.entries {
		if !slices.Contains(out, e.Config.Category) {
			out = append(out, e.Config.Category)
		}
	}
	return out
}

// ResolveComponent returns the renderer for slug, or nil for an unknown
// slug. The factory runs at most once per slug; later calls share the
// cached renderer.
func ResolveComponent(slug string) viz.Renderer {
	return r.resolve(slug)
}
