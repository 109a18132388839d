package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/expconf/internal/ctyconv"
	"github.com/specialistvlad/expconf/internal/fieldpath"
)

// ToTree renders c as a tree of maps, slices and primitives. Every field is
// included, whatever its kind. Spec.FromTree reverses it.
func (c *Config) ToTree() map[string]any {
	if c == nil {
		return nil
	}
	tree := make(map[string]any, len(c.values))
	for i, f := range c.spec.fields {
		tree[f.Name] = treeValue(c.values[i])
	}
	return tree
}

func treeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *Config:
		if x == nil {
			return nil
		}
		return x.ToTree()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = treeValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = treeValue(e)
		}
		return out
	}
	if reflect.ValueOf(v).Kind() == reflect.Struct {
		return objectTree(v)
	}
	return v
}

// ToYAML encodes c as a YAML mapping with fields in declaration order.
func (c *Config) ToYAML() ([]byte, error) {
	node, err := c.yamlNode()
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encoding %s as yaml: %w", c.spec.name, err)
	}
	return out, nil
}

func (c *Config) yamlNode() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i, f := range c.spec.fields {
		vn, err := valueNode(c.values[i])
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", f.Name, err)
		}
		n.Content = append(n.Content, keyNode(f.Name), vn)
	}
	return n, nil
}

func keyNode(k string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
}

func valueNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *Config:
		if x != nil {
			return x.yamlNode()
		}
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range x {
			en, err := valueNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range ctyconv.SortedKeys(x) {
			en, err := valueNode(x[k])
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode(k), en)
		}
		return n, nil
	}
	if v != nil && reflect.ValueOf(v).Kind() == reflect.Struct {
		return valueNode(objectTree(v))
	}
	n := &yaml.Node{}
	if err := n.Encode(treeValue(v)); err != nil {
		return nil, err
	}
	return n, nil
}

// FromYAML decodes a YAML mapping and constructs an instance through New.
func (s *Spec) FromYAML(data []byte, opts ...NewOption) (*Config, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding %s from yaml: %w", s.name, err)
	}
	return s.New(tree, opts...)
}

// Write stores c as YAML at path, creating parent directories.
func (c *Config) Write(path string) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads a YAML file written by Config.Write.
func (s *Spec) Load(path string, opts ...NewOption) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := s.FromYAML(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// leaf is one flattened value.
type leaf struct {
	path      string
	value     any
	stateless bool
}

// leaves flattens c depth first in declaration order. Nested instances and
// non-empty dicts are flattened; lists are kept whole.
func (c *Config) leaves(prefix string, stateless bool, out []leaf) []leaf {
	for i, f := range c.spec.fields {
		p := fieldpath.Join(prefix, f.Name)
		st := stateless || f.Kind == KindStateless
		switch x := c.values[i].(type) {
		case *Config:
			if x != nil {
				out = x.leaves(p, st, out)
				continue
			}
		case map[string]any:
			if len(x) > 0 {
				out = mapLeaves(p, st, x, out)
				continue
			}
		}
		out = append(out, leaf{path: p, value: treeValue(c.values[i]), stateless: st})
	}
	return out
}

func mapLeaves(prefix string, stateless bool, m map[string]any, out []leaf) []leaf {
	for _, k := range ctyconv.SortedKeys(m) {
		p := fieldpath.Join(prefix, k)
		switch x := m[k].(type) {
		case *Config:
			if x != nil {
				out = x.leaves(p, stateless, out)
				continue
			}
		case map[string]any:
			if len(x) > 0 {
				out = mapLeaves(p, stateless, x, out)
				continue
			}
		}
		out = append(out, leaf{path: p, value: treeValue(m[k]), stateless: stateless})
	}
	return out
}

// DotPaths returns every leaf value keyed by its dotted path.
func (c *Config) DotPaths() map[string]any {
	ls := c.leaves("", false, nil)
	out := make(map[string]any, len(ls))
	for _, l := range ls {
		out[l.path] = l.value
	}
	return out
}

// DotPathYAML renders DotPaths as a YAML mapping in declaration order.
func (c *Config) DotPathYAML() (string, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, l := range c.leaves("", false, nil) {
		vn, err := valueNode(l.value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", l.path, err)
		}
		n.Content = append(n.Content, keyNode(l.path), vn)
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
