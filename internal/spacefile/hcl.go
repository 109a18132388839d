package spacefile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/expconf/internal/ctyconv"
	"github.com/specialistvlad/expconf/searchspace"
)

type spaceRoot struct {
	Dimensions []*dimensionBlock `hcl:"dimension,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type dimensionBlock struct {
	Path string   `hcl:"path,label"`
	Body hcl.Body `hcl:",remain"`
}

// domainBlock is the body of a dimension or branch block.
type domainBlock struct {
	Low      *float64       `hcl:"low,optional"`
	High     *float64       `hcl:"high,optional"`
	NBins    *int           `hcl:"n_bins,optional"`
	LogScale *bool          `hcl:"log_scale,optional"`
	DType    *string        `hcl:"dtype,optional"`
	Value    hcl.Expression `hcl:"value,optional"`
	Values   hcl.Expression `hcl:"values,optional"`
	Branches []*domainBlock `hcl:"branch,block"`
}

// ParseHCL decodes an HCL search space.
func ParseHCL(src []byte, filename string) (*searchspace.Space, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root spaceRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	space, err := searchspace.New()
	if err != nil {
		return nil, err
	}
	for _, dim := range root.Dimensions {
		var block domainBlock
		if diags := gohcl.DecodeBody(dim.Body, nil, &block); diags.HasErrors() {
			return nil, fmt.Errorf("dimension %q: %w", dim.Path, diags)
		}
		d, err := block.domain()
		if err != nil {
			return nil, fmt.Errorf("dimension %q: %w", dim.Path, err)
		}
		if err := space.Add(dim.Path, d); err != nil {
			return nil, err
		}
	}
	return space, nil
}

func (b *domainBlock) domain() (searchspace.Domain, error) {
	value, err := optionalValue(b.Value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	values, err := optionalValue(b.Values)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}

	spec := domainSpec{
		Low:      b.Low,
		High:     b.High,
		NBins:    b.NBins,
		LogScale: b.LogScale,
		DType:    b.DType,
		Value:    value,
		Values:   values,
	}
	for i, branch := range b.Branches {
		d, err := branch.domain()
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		spec.Branches = append(spec.Branches, d)
	}
	return spec.build()
}

// optionalValue evaluates an optional attribute. An absent attribute
// evaluates to null and is reported as nil.
func optionalValue(expr hcl.Expression) (any, error) {
	if expr == nil {
		return nil, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}
	return ctyconv.ToNative(v)
}
