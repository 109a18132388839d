package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/specialistvlad/expconf/internal/ctyconv"
)

const uidLength = 8

// UID returns a short hex digest identifying the experiment c describes. It
// covers the name, declared type and value of every field in declaration
// order, recursing into nested instances, and skips Stateless and Derived
// fields. Nested configuration types contribute their contents, not their
// names. It is recomputed on every call.
func (c *Config) UID() string {
	sum := sha256.Sum256(c.identityJSON())
	return hex.EncodeToString(sum[:])[:uidLength]
}

// identityJSON is the canonical encoding hashed by UID.
func (c *Config) identityJSON() []byte {
	id := c.identity()
	b, err := ctyjson.Marshal(id, id.Type())
	if err != nil {
		// identity only builds known, unmarked values.
		panic(fmt.Sprintf("config: encoding identity of %s: %v", c.spec.name, err))
	}
	return b
}

// identity builds the ordered (name, type, value) triples.
func (c *Config) identity() cty.Value {
	var triples []cty.Value
	for i, f := range c.spec.fields {
		if f.Kind != KindNormal {
			continue
		}
		triples = append(triples, cty.ObjectVal(map[string]cty.Value{
			"name":  cty.StringVal(f.Name),
			"type":  cty.StringVal(identityTypeName(f.Type)),
			"value": identityValue(c.values[i]),
		}))
	}
	if len(triples) == 0 {
		return cty.EmptyTupleVal
	}
	return cty.TupleVal(triples)
}

// identityTypeName is the type name hashed by UID. Configuration types are
// reduced to a structural token, at any depth.
func identityTypeName(t Type) string {
	switch x := t.(type) {
	case *Spec:
		return "config"
	case listType:
		return "list(" + identityTypeName(x.elem) + ")"
	case dictType:
		return "dict(" + identityTypeName(x.elem) + ")"
	case optionalType:
		return "optional(" + identityTypeName(x.inner) + ")"
	}
	return t.Name()
}

func identityValue(v any) cty.Value {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.String)
	case *Config:
		if x == nil {
			return cty.NullVal(cty.String)
		}
		return x.identity()
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(x))
		for i, e := range x {
			elems[i] = identityValue(e)
		}
		return cty.TupleVal(elems)
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			attrs[k] = identityValue(e)
		}
		return cty.ObjectVal(attrs)
	}
	cv, err := ctyconv.FromNative(v)
	if err != nil || cv.IsNull() {
		return cty.StringVal(fmt.Sprintf("%#v", v))
	}
	return cv
}
