package spacefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/expconf/internal/ctxlog"
	"github.com/specialistvlad/expconf/searchspace"
)

// Load reads a search space, choosing the format by file extension:
// .hcl for HCL, .yaml or .yml for YAML.
func Load(ctx context.Context, path string) (*searchspace.Space, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search space %s: %w", path, err)
	}

	var space *searchspace.Space
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		space, err = ParseHCL(src, path)
	case ".yaml", ".yml":
		space, err = ParseYAML(src)
	default:
		return nil, fmt.Errorf("unsupported search space format %q for %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading search space %s: %w", path, err)
	}

	logger.Debug("Search space loaded.", "path", path, "dimensions", space.Paths(), "points", space.Size())
	return space, nil
}
