package catalog

import (
	"io/fs"
	"sort"
)

// Registry holds the loaded catalogs. It is read-only after Load and may
// be read concurrently without locking. Reload replaces the contents in
// place and is NOT safe to call concurrently with reads: callers that
// reload (tests, live config reload) must quiesce readers first
// (single-writer, quiesce-before-reload contract).
type Registry struct {
	fsys fs.FS

	harnesses    map[string]Harness
	dependencies map[string]Dependency
	presets      map[string]Preset
	methods      map[string]InstallMethod
}

// Load builds a Registry from the bundled data files. Loading is
// fail-fast: the first malformed entry aborts the whole load.
func Load() (*Registry, error) {
	return LoadFS(dataFS)
}

// LoadFS builds a Registry from an alternate data tree. The tree must
// contain data/harnesses.json, data/dependencies.json, data/presets.json,
// and data/methods.json. Used by tests.
func LoadFS(fsys fs.FS) (*Registry, error) {
	r := &Registry{fsys: fsys}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads all four catalogs from the backing data tree.
// See the Registry doc comment for the concurrency contract.
func (r *Registry) Reload() error {
	harnesses, err := loadHarnesses(r.fsys)
	if err != nil {
		return err
	}
	dependencies, err := loadDependencies(r.fsys)
	if err != nil {
		return err
	}
	presets, err := loadPresets(r.fsys)
	if err != nil {
		return err
	}
	methods, err := loadMethods(r.fsys)
	if err != nil {
		return err
	}

	r.harnesses = harnesses
	r.dependencies = dependencies
	r.presets = presets
	r.methods = methods
	return nil
}

// Harnesses returns the harness catalog keyed by harness name.
func (r *Registry) Harnesses() map[string]Harness { return r.harnesses }

// Dependencies returns the dependency catalog keyed by dependency name.
func (r *Registry) Dependencies() map[string]Dependency { return r.dependencies }

// Presets returns the preset catalog keyed by preset name.
func (r *Registry) Presets() map[string]Preset { return r.presets }

// Methods returns the install method catalog keyed "harness.method_name".
func (r *Registry) Methods() map[string]InstallMethod { return r.methods }

// Harness looks up one harness by name.
func (r *Registry) Harness(name string) (Harness, bool) {
	h, ok := r.harnesses[name]
	return h, ok
}

// Dependency looks up one dependency by name.
func (r *Registry) Dependency(name string) (Dependency, bool) {
	d, ok := r.dependencies[name]
	return d, ok
}

// Preset looks up one preset by name.
func (r *Registry) Preset(name string) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// HarnessNames returns all harness names sorted alphabetically.
func (r *Registry) HarnessNames() []string {
	names := make([]string, 0, len(r.harnesses))
	for name := range r.harnesses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetsByPriority returns all presets sorted by ascending priority,
// then name for a stable order.
func (r *Registry) PresetsByPriority() []Preset {
	presets := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool {
		if presets[i].Priority != presets[j].Priority {
			return presets[i].Priority < presets[j].Priority
		}
		return presets[i].Name < presets[j].Name
	})
	return presets
}
