package searchspace

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DType selects the numeric type a Distribution produces.
type DType string

const (
	Float DType = "float"
	Int   DType = "int"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Distribution is a bounded numeric range discretized into NBins intervals.
// Both endpoints are inclusive.
type Distribution struct {
	Low      float64 `validate:"ltefield=High"`
	High     float64
	NBins    int   `validate:"gte=1"`
	LogScale bool
	DType    DType `validate:"omitempty,oneof=float int"`
}

// DistributionOption customizes a Distribution built by NewDistribution.
type DistributionOption func(*Distribution)

// LogScale spaces values geometrically, placing more candidates near Low.
func LogScale() DistributionOption {
	return func(d *Distribution) { d.LogScale = true }
}

// IntType makes the distribution produce integers. Bounds are truncated.
func IntType() DistributionOption {
	return func(d *Distribution) { d.DType = Int }
}

// NewDistribution builds and validates a Distribution.
func NewDistribution(low, high float64, nBins int, opts ...DistributionOption) (Distribution, error) {
	d := Distribution{Low: low, High: high, NBins: nBins, DType: Float}
	for _, opt := range opts {
		opt(&d)
	}
	if d.DType == Int {
		d.Low = math.Trunc(d.Low)
		d.High = math.Trunc(d.High)
	}
	if err := d.Validate(); err != nil {
		return Distribution{}, err
	}
	return d, nil
}

// MustDistribution is like NewDistribution but panics on error.
func MustDistribution(low, high float64, nBins int, opts ...DistributionOption) Distribution {
	d, err := NewDistribution(low, high, nBins, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate checks the distribution invariants.
func (d Distribution) Validate() error {
	if math.IsNaN(d.Low) || math.IsNaN(d.High) || math.IsInf(d.Low, 0) || math.IsInf(d.High, 0) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidDistribution)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDistribution, describeValidation(err))
	}
	if d.LogScale && d.Low <= 0 {
		return fmt.Errorf("%w: log scale requires low > 0, got %v", ErrInvalidDistribution, d.Low)
	}
	return nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value()))
		case "ltefield":
			msgs = append(msgs, fmt.Sprintf("%s must be <= %s, got %v", fe.Field(), fe.Param(), fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

// Values returns the NBins+1 candidate points from Low to High. The first and
// last points are exactly Low and High. For the int dtype points are
// truncated and duplicates removed, so fewer points may be returned.
func (d Distribution) Values() []float64 {
	n := d.NBins
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		if d.LogScale {
			out[i] = d.Low * math.Pow(d.High/d.Low, t)
		} else {
			out[i] = d.Low + float64(i)*(d.High-d.Low)/float64(n)
		}
	}
	out[0], out[n] = d.Low, d.High

	if d.DType != Int {
		return out
	}
	ints := out[:0]
	for _, v := range out {
		v = math.Trunc(v)
		if len(ints) > 0 && ints[len(ints)-1] == v {
			continue
		}
		ints = append(ints, v)
	}
	return ints
}

// Expand returns Values typed by dtype: float64 or int.
func (d Distribution) Expand() []any {
	vals := d.Values()
	out := make([]any, len(vals))
	for i, v := range vals {
		if d.DType == Int {
			out[i] = int(v)
		} else {
			out[i] = v
		}
	}
	return out
}

// Sample draws uniformly from Expand.
func (d Distribution) Sample(r *rand.Rand) any {
	vals := d.Expand()
	return vals[intN(r, len(vals))]
}

// Contains reports whether v, converted to a number, lies within [Low, High].
// Strings holding numbers are accepted.
func (d Distribution) Contains(v any) bool {
	x, ok := toFloat(v)
	if !ok {
		return false
	}
	if d.DType == Int {
		x = math.Trunc(x)
	}
	return x >= d.Low && x <= d.High
}

func (d Distribution) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Distribution(low=%v, high=%v, n_bins=%d", d.Low, d.High, d.NBins)
	if d.LogScale {
		sb.WriteString(", log_scale")
	}
	if d.DType == Int {
		sb.WriteString(", int")
	}
	sb.WriteString(")")
	return sb.String()
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
