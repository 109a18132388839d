package spacefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/expconf/searchspace"
)

// ParseYAML decodes a YAML search space. The document must be a mapping
// from dotted path to domain; mapping order is kept.
func ParseYAML(src []byte) (*searchspace.Space, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML search space: %w", err)
	}

	space, err := searchspace.New()
	if err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return space, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: search space must be a mapping of path to domain", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		d, err := nodeDomain(val)
		if err != nil {
			return nil, fmt.Errorf("line %d: dimension %q: %w", key.Line, key.Value, err)
		}
		if err := space.Add(key.Value, d); err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return space, nil
}

func nodeDomain(n *yaml.Node) (searchspace.Domain, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeDomain(n.Alias)

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return searchspace.Value(v), nil

	case yaml.SequenceNode:
		return sequenceDomain(n)

	case yaml.MappingNode:
		return mappingDomain(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// sequenceDomain turns a sequence into a categorical whose branches are the
// element domains.
func sequenceDomain(n *yaml.Node) (searchspace.Domain, error) {
	branches := make([]searchspace.Domain, 0, len(n.Content))
	for i, item := range n.Content {
		d, err := nodeDomain(item)
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		branches = append(branches, d)
	}
	return searchspace.NewCategorical(branches...)
}

func mappingDomain(n *yaml.Node) (searchspace.Domain, error) {
	var spec domainSpec
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		var err error
		switch key {
		case "categorical":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: categorical must be a list", val.Line)
			}
			for j, item := range val.Content {
				d, derr := nodeDomain(item)
				if derr != nil {
					return nil, fmt.Errorf("branch %d: %w", j, derr)
				}
				spec.Branches = append(spec.Branches, d)
			}
			if len(spec.Branches) == 0 {
				return nil, fmt.Errorf("%w: categorical needs at least one branch", searchspace.ErrInvalidDistribution)
			}
		case "value":
			err = val.Decode(&spec.Value)
			if err == nil && spec.Value == nil {
				err = fmt.Errorf("value cannot be null")
			}
		case "values":
			var items []any
			err = val.Decode(&items)
			spec.Values = items
		case "low":
			err = val.Decode(&spec.Low)
		case "high":
			err = val.Decode(&spec.High)
		case "n_bins":
			err = val.Decode(&spec.NBins)
		case "log_scale":
			err = val.Decode(&spec.LogScale)
		case "dtype":
			err = val.Decode(&spec.DType)
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", n.Content[i].Line, key)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", val.Line, key, err)
		}
	}
	return spec.build()
}
