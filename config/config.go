// Package config loads the YAML documents that describe entity archetypes.
//
// A document's top level is a mapping; the "components" entry maps component
// type names to their parameter blocks. Mapping order is preserved from the
// document, which is a hard requirement: components are constructed in
// declared order, and constructors may look up siblings declared before them.
package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lmcneill42/space-game/vmath"
)

// Error describes a problem with a config document or a value read from one.
// It is fatal only to the single entity being constructed from the document.
type Error struct {
	File   string
	Key    string
	Detail string
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config %s: key %q: %s", e.File, e.Key, e.Detail)
	}
	return fmt.Sprintf("config %s: %s", e.File, e.Detail)
}

// Config is one node of a parsed document: a mapping with ordered keys, a
// sequence, or a scalar leaf.
type Config struct {
	file     string
	scalar   *yaml.Node
	keys     []string
	children map[string]*Config
	items    []*Config
}

// Entry is one ordered (key, value) pair of a mapping.
type Entry struct {
	Name   string
	Config *Config
}

// New returns an empty mapping config. Entities created without a document
// use one of these.
func New() *Config {
	return &Config{children: map[string]*Config{}}
}

// Parse decodes a YAML document. file is used for error reporting only.
func Parse(data []byte, file string) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{File: file, Detail: err.Error()}
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return New(), nil
		}
		root = doc.Content[0]
	}
	return fromNode(root, file)
}

func fromNode(n *yaml.Node, file string) (*Config, error) {
	switch n.Kind {
	case yaml.MappingNode:
		c := &Config{file: file, children: map[string]*Config{}}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromNode(n.Content[i+1], file)
			if err != nil {
				return nil, err
			}
			if _, dup := c.children[key]; !dup {
				c.keys = append(c.keys, key)
			}
			c.children[key] = child
		}
		return c, nil
	case yaml.SequenceNode:
		c := &Config{file: file}
		for _, item := range n.Content {
			child, err := fromNode(item, file)
			if err != nil {
				return nil, err
			}
			c.items = append(c.items, child)
		}
		return c, nil
	case yaml.ScalarNode:
		return &Config{file: file, scalar: n}, nil
	case yaml.AliasNode:
		return fromNode(n.Alias, file)
	default:
		return nil, &Error{File: file, Detail: fmt.Sprintf("unsupported node kind %d", n.Kind)}
	}
}

// File returns the name of the document this config was read from.
func (c *Config) File() string {
	return c.file
}

// Get resolves a dotted key path ("camera.shake_factor") and returns the
// config node there, or nil when any path element is absent.
func (c *Config) Get(key string) *Config {
	cur := c
	start := 0
	for i := 0; i <= len(key); i++ {
		if i == len(key) || key[i] == '.' {
			if cur == nil || cur.children == nil {
				return nil
			}
			cur = cur.children[key[start:i]]
			start = i + 1
		}
	}
	return cur
}

// Has reports whether the dotted key path resolves to a value.
func (c *Config) Has(key string) bool {
	return c.Get(key) != nil
}

// Entries returns the mapping's (key, value) pairs in document order.
func (c *Config) Entries() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Entry{Name: k, Config: c.children[k]})
	}
	return out
}

// List returns the sequence items at the dotted key path, or nil.
func (c *Config) List(key string) []*Config {
	node := c.Get(key)
	if node == nil {
		return nil
	}
	return node.items
}

// Components returns the ordered component entries of an archetype document.
func (c *Config) Components() []Entry {
	comps := c.Get("components")
	if comps == nil {
		return nil
	}
	return comps.Entries()
}

func (c *Config) missing(key string) error {
	return &Error{File: c.file, Key: key, Detail: "required parameter missing"}
}

func (c *Config) malformed(key, want string, err error) error {
	return &Error{File: c.file, Key: key, Detail: fmt.Sprintf("expected %s: %v", want, err)}
}

// Float returns the float at the key, or an *Error when it is absent or not
// a number.
func (c *Config) Float(key string) (float64, error) {
	node := c.Get(key)
	if node == nil || node.scalar == nil {
		return 0, c.missing(key)
	}
	f, err := strconv.ParseFloat(node.scalar.Value, 64)
	if err != nil {
		return 0, c.malformed(key, "number", err)
	}
	return f, nil
}

// FloatOr returns the float at the key, or def when the key is absent.
// A present but malformed value still counts as absent here; required
// parameters should use Float.
func (c *Config) FloatOr(key string, def float64) float64 {
	f, err := c.Float(key)
	if err != nil {
		return def
	}
	return f
}

// Int returns the integer at the key, or an *Error.
func (c *Config) Int(key string) (int, error) {
	node := c.Get(key)
	if node == nil || node.scalar == nil {
		return 0, c.missing(key)
	}
	i, err := strconv.Atoi(node.scalar.Value)
	if err != nil {
		return 0, c.malformed(key, "integer", err)
	}
	return i, nil
}

// IntOr returns the integer at the key, or def when absent.
func (c *Config) IntOr(key string, def int) int {
	i, err := c.Int(key)
	if err != nil {
		return def
	}
	return i
}

// String returns the string at the key, or an *Error.
func (c *Config) String(key string) (string, error) {
	node := c.Get(key)
	if node == nil || node.scalar == nil {
		return "", c.missing(key)
	}
	return node.scalar.Value, nil
}

// StringOr returns the string at the key, or def when absent.
func (c *Config) StringOr(key, def string) string {
	s, err := c.String(key)
	if err != nil {
		return def
	}
	return s
}

// BoolOr returns the boolean at the key, or def when absent.
func (c *Config) BoolOr(key string, def bool) bool {
	node := c.Get(key)
	if node == nil || node.scalar == nil {
		return def
	}
	b, err := strconv.ParseBool(node.scalar.Value)
	if err != nil {
		return def
	}
	return b
}

// Vec2Or reads a {x, y} mapping at the key, or returns def when absent.
func (c *Config) Vec2Or(key string, def vmath.Vec2) vmath.Vec2 {
	node := c.Get(key)
	if node == nil {
		return def
	}
	return vmath.V(node.FloatOr("x", def.X), node.FloatOr("y", def.Y))
}

// merge overlays other onto c: other's values win, keys new to c are
// appended after c's own (parent order first, per derive_from semantics).
func (c *Config) merge(other *Config) {
	if other.scalar != nil || other.items != nil || other.children == nil {
		// Leaf or sequence replaces wholesale.
		c.scalar = other.scalar
		c.items = other.items
		c.keys = other.keys
		c.children = other.children
		return
	}
	if c.children == nil {
		c.children = map[string]*Config{}
	}
	for _, k := range other.keys {
		if existing, ok := c.children[k]; ok {
			existing.merge(other.children[k])
		} else {
			c.keys = append(c.keys, k)
			c.children[k] = other.children[k]
		}
	}
}
