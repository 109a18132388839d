package spacefile

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/expconf/searchspace"
)

// domainSpec is the format-neutral description of one domain.
type domainSpec struct {
	Low      *float64
	High     *float64
	NBins    *int
	LogScale *bool
	DType    *string
	Value    any
	Values   any
	Branches []searchspace.Domain
}

func (s domainSpec) build() (searchspace.Domain, error) {
	isRange := s.Low != nil || s.High != nil || s.NBins != nil || s.LogScale != nil || s.DType != nil
	var kinds []string
	if isRange {
		kinds = append(kinds, "range")
	}
	if s.Value != nil {
		kinds = append(kinds, "value")
	}
	if s.Values != nil {
		kinds = append(kinds, "values")
	}
	if len(s.Branches) > 0 {
		kinds = append(kinds, "categorical")
	}
	if len(kinds) != 1 {
		return nil, fmt.Errorf("%w: a domain must be exactly one of range, value, values or categorical, got [%s]",
			searchspace.ErrInvalidDistribution, strings.Join(kinds, ", "))
	}

	switch {
	case isRange:
		return s.distribution()
	case s.Value != nil:
		return searchspace.Value(s.Value), nil
	case s.Values != nil:
		return choices(s.Values)
	}
	return searchspace.NewCategorical(s.Branches...)
}

func (s domainSpec) distribution() (searchspace.Domain, error) {
	if s.Low == nil || s.High == nil || s.NBins == nil {
		return nil, fmt.Errorf("%w: a range needs low, high and n_bins", searchspace.ErrInvalidDistribution)
	}
	var opts []searchspace.DistributionOption
	if s.LogScale != nil && *s.LogScale {
		opts = append(opts, searchspace.LogScale())
	}
	if s.DType != nil {
		switch searchspace.DType(*s.DType) {
		case searchspace.Int:
			opts = append(opts, searchspace.IntType())
		case searchspace.Float:
		default:
			return nil, fmt.Errorf("%w: dtype must be float or int, got %q", searchspace.ErrInvalidDistribution, *s.DType)
		}
	}
	return searchspace.NewDistribution(*s.Low, *s.High, *s.NBins, opts...)
}

func choices(v any) (searchspace.Domain, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: values must be a list, got %T", searchspace.ErrInvalidDistribution, v)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return searchspace.Choices(items...)
}
