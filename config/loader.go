package config

import (
	"io/fs"
)

// deriveKey names the document a config derives from. The parent is loaded
// recursively and the child is overlaid on top of it.
const deriveKey = "derive_from"

// Loader reads archetype documents from a filesystem (usually the embedded
// content set) and caches the parsed trees. Documents are immutable once
// loaded; callers must not mutate the returned configs.
type Loader struct {
	fsys    fs.FS
	cache   map[string]*Config
	loading map[string]bool
}

// NewLoader returns a loader over the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:    fsys,
		cache:   map[string]*Config{},
		loading: map[string]bool{},
	}
}

// Load reads, parses and caches the named document, resolving derive_from
// chains. The name is a slash-separated path like "enemies/carrier.yaml".
func (l *Loader) Load(name string) (*Config, error) {
	if c, ok := l.cache[name]; ok {
		return c, nil
	}
	if l.loading[name] {
		return nil, &Error{File: name, Detail: "derive_from cycle"}
	}
	l.loading[name] = true
	defer delete(l.loading, name)

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, &Error{File: name, Detail: err.Error()}
	}
	c, err := Parse(data, name)
	if err != nil {
		return nil, err
	}

	if parentName, perr := c.String(deriveKey); perr == nil {
		parent, err := l.Load(parentName)
		if err != nil {
			return nil, err
		}
		merged := cloneConfig(parent)
		merged.merge(c)
		merged.file = name
		delete(merged.children, deriveKey)
		merged.keys = without(merged.keys, deriveKey)
		c = merged
	}

	l.cache[name] = c
	return c, nil
}

// Names returns every document name under the filesystem root, for startup
// validation sweeps.
func (l *Loader) Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !isSourceFile(path) {
			names = append(names, path)
		}
		return nil
	})
	return names, err
}

func isSourceFile(path string) bool {
	n := len(path)
	return n > 3 && path[n-3:] == ".go"
}

func cloneConfig(c *Config) *Config {
	out := &Config{file: c.file, scalar: c.scalar}
	if c.keys != nil {
		out.keys = append([]string(nil), c.keys...)
	}
	if c.children != nil {
		out.children = make(map[string]*Config, len(c.children))
		for k, v := range c.children {
			out.children[k] = cloneConfig(v)
		}
	}
	for _, item := range c.items {
		out.items = append(out.items, cloneConfig(item))
	}
	return out
}

func without(keys []string, drop string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}
