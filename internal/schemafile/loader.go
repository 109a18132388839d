package schemafile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/expconf/config"
	"github.com/specialistvlad/expconf/internal/ctxlog"
	"github.com/specialistvlad/expconf/internal/ctyconv"
	"github.com/specialistvlad/expconf/internal/fsutil"
	"github.com/specialistvlad/expconf/internal/registry"
)

// Loader reads schema files into a registry.
type Loader struct {
	reg    *registry.Registry
	parser *hclparse.Parser
}

// NewLoader creates a loader that registers declared types into reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg, parser: hclparse.NewParser()}
}

// Load parses every .hcl file found under paths, in order, and registers the
// declared types. It returns the newly declared types in declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*config.Spec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Schema loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No .hcl schema files found.", "paths", paths)
		return nil, nil
	}
	logger.Debug("Discovered schema files.", "files", files)

	var specs []*config.Spec
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		declared, err := l.decode(ctx, hclFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema file %s: %w", file, err)
		}
		specs = append(specs, declared...)
	}

	logger.Info("Schema loaded.", "types", len(specs))
	return specs, nil
}

// LoadSource is like Load for a single in-memory file.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) ([]*config.Spec, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, hclFile)
}

func (l *Loader) decode(ctx context.Context, file *hcl.File) ([]*config.Spec, error) {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	var specs []*config.Spec
	for _, block := range root.Configs {
		spec, diags := l.buildSpec(block)
		if diags.HasErrors() {
			return nil, diags
		}
		if err := l.reg.Register(spec); err != nil {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Duplicate config type",
				Detail:   err.Error(),
				Subject:  block.Remain.MissingItemRange().Ptr(),
			}}
		}
		logger.Debug("Declared config type.", "name", spec.Name(), "fields", spec.Keys())
		specs = append(specs, spec)
	}
	return specs, nil
}

func (l *Loader) buildSpec(block *configBlock) (*config.Spec, hcl.Diagnostics) {
	extra, diags := block.Remain.JustAttributes()
	for name, attr := range extra {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported argument",
			Detail:   fmt.Sprintf("An argument named %q is not expected in a config block.", name),
			Subject:  attr.NameRange.Ptr(),
		})
	}
	fields := make([]config.FieldDef, 0, len(block.Fields))
	for _, fb := range block.Fields {
		f, fieldDiags := l.buildField(fb)
		diags = append(diags, fieldDiags...)
		if !fieldDiags.HasErrors() {
			fields = append(fields, f)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	var (
		spec *config.Spec
		err  error
	)
	if block.Extends != nil {
		parent, ok := l.reg.Lookup(*block.Extends)
		if !ok {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown parent type",
				Detail:   fmt.Sprintf("Config %q extends %q, which is not declared before it.", block.Name, *block.Extends),
				Subject:  block.Remain.MissingItemRange().Ptr(),
			}}
		}
		spec, err = config.Extend(parent, block.Name, fields...)
	} else {
		spec, err = config.Define(block.Name, fields...)
	}
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid config type",
			Detail:   err.Error(),
			Subject:  block.Remain.MissingItemRange().Ptr(),
		}}
	}
	return spec, nil
}

func (l *Loader) buildField(fb *fieldBlock) (config.FieldDef, hcl.Diagnostics) {
	attrs, diags := fb.Body.JustAttributes()
	if diags.HasErrors() {
		return config.FieldDef{}, diags
	}
	for name, attr := range attrs {
		if !fieldAttributes[name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected in a field block.", name),
				Subject:  attr.NameRange.Ptr(),
			})
		}
	}

	typeAttr, ok := attrs["type"]
	if !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing required argument",
			Detail:   fmt.Sprintf("Field %q must declare a type.", fb.Name),
			Subject:  fb.Body.MissingItemRange().Ptr(),
		})
		return config.FieldDef{}, diags
	}
	typ, typeDiags := resolveType(typeAttr.Expr, l.reg.Lookup)
	diags = append(diags, typeDiags...)

	var opts []config.FieldOption
	if attr, ok := attrs["kind"]; ok {
		var kind string
		kindDiags := gohcl.DecodeExpression(attr.Expr, nil, &kind)
		diags = append(diags, kindDiags...)
		if !kindDiags.HasErrors() {
			opt, valid := parseKind(kind)
			if !valid {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid field kind",
					Detail:   fmt.Sprintf("Kind %q is not one of normal, stateless, derived.", kind),
					Subject:  attr.Expr.Range().Ptr(),
				})
			} else {
				opts = append(opts, opt)
			}
		}
	}
	if attr, ok := attrs["description"]; ok {
		var text string
		descDiags := gohcl.DecodeExpression(attr.Expr, nil, &text)
		diags = append(diags, descDiags...)
		opts = append(opts, config.Describe(text))
	}
	if attr, ok := attrs["default"]; ok {
		def, defDiags := defaultValue(attr)
		diags = append(diags, defDiags...)
		opts = append(opts, config.Default(def))
	}

	if diags.HasErrors() {
		return config.FieldDef{}, diags
	}
	return config.Field(fb.Name, typ, opts...), nil
}

// defaultValue evaluates a default expression without variables or functions.
func defaultValue(attr *hcl.Attribute) (any, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if !val.IsWhollyKnown() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid default",
			Detail:   "A default value must be a constant.",
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	if val.Type() == cty.DynamicPseudoType && val.IsNull() {
		return nil, nil
	}
	native, err := ctyconv.ToNative(val)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid default",
			Detail:   err.Error(),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return native, nil
}
