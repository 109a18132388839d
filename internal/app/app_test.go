package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/expconf/internal/testutil"
)

const experimentSchema = `
config "Model" {
  field "layers" {
    type    = int
    default = 2
  }
  field "lr" {
    type    = float
    default = 0.1
  }
}

config "Experiment" {
  field "model" { type = Model }
  field "opt" {
    type    = enum("adam", "sgd")
    default = "adam"
  }
  field "seed" {
    type    = int
    default = 1
    kind    = "stateless"
  }
}
`

func newTestConfig(t *testing.T, command string) (*Config, string) {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		Command:    command,
		SchemaPath: testutil.WriteFile(t, dir, "schema.hcl", experimentSchema),
		TypeName:   "Experiment",
	}, dir
}

func runApp(t *testing.T, cfg *Config) string {
	t.Helper()
	a, out, _ := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))
	return out.String()
}

func decodeDocuments(t *testing.T, data string) []map[string]any {
	t.Helper()
	dec := yaml.NewDecoder(bytes.NewBufferString(data))
	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs
		}
		require.NoError(t, err)
		docs = append(docs, doc)
	}
}

func TestNewApp_RegistersSchema(t *testing.T) {
	cfg, _ := newTestConfig(t, CommandShow)
	a, _, logs := SetupAppTest(t, cfg)

	assert.Equal(t, []string{"Model", "Experiment"}, a.Registry().Names())
	assert.Contains(t, logs.String(), "Schema registered.")
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		cfg, _ := newTestConfig(t, CommandShow)
		cfg.TypeName = "Missing"
		_, err := NewApp(io.Discard, io.Discard, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown config type 'Missing'")
	})

	t.Run("missing schema", func(t *testing.T) {
		cfg := &Config{Command: CommandShow, SchemaPath: filepath.Join(t.TempDir(), "nope.hcl"), TypeName: "Experiment"}
		_, err := NewApp(io.Discard, io.Discard, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load schema")
	})
}

func TestRun_UID(t *testing.T) {
	cfg, _ := newTestConfig(t, CommandUID)
	out := runApp(t, cfg)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}\n$`), out)

	// A stateless override keeps the identity.
	cfg2, dir := newTestConfig(t, CommandUID)
	cfg2.ConfigPath = testutil.WriteFile(t, dir, "run.yaml", "seed: 42\n")
	assert.Equal(t, out, runApp(t, cfg2))
}

func TestRun_Show(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandShow)
	cfg.ConfigPath = testutil.WriteFile(t, dir, "run.yaml", "model:\n  lr: 0.5\nopt: sgd\n")

	docs := decodeDocuments(t, runApp(t, cfg))
	require.Len(t, docs, 1)
	assert.Equal(t, map[string]any{
		"model": map[string]any{"layers": 2, "lr": 0.5},
		"opt":   "sgd",
		"seed":  1,
	}, docs[0])
}

func TestRun_ShowRejectsUnknownField(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandShow)
	cfg.ConfigPath = testutil.WriteFile(t, dir, "run.yaml", "momentum: 0.9\n")
	a, _, _ := SetupAppTest(t, cfg)
	require.Error(t, a.Run(context.Background()))

	cfg.Lenient = true
	a, out, logs := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "opt: adam")
	assert.Contains(t, logs.String(), "Ignoring unknown fields.")
}

func TestRun_Paths(t *testing.T) {
	cfg, _ := newTestConfig(t, CommandPaths)
	out := runApp(t, cfg)
	assert.Equal(t, "model.layers: 2\nmodel.lr: 0.1\nopt: adam\nseed: 1\n", out)
}

func TestRun_Diff(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandDiff)
	cfg.OtherPath = testutil.WriteFile(t, dir, "other.yaml", "opt: sgd\nseed: 7\n")
	out := runApp(t, cfg)
	assert.Equal(t, "opt:(string)adam->(string)sgd\n", out)
}

func TestRun_Sample(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandSample)
	cfg.SpacePath = testutil.WriteFile(t, dir, "space.yaml", "model.lr: {low: 0.01, high: 0.1, n_bins: 9}\nopt: [adam, sgd]\n")
	cfg.Seed = 7

	first := runApp(t, cfg)
	second := runApp(t, cfg)
	assert.Equal(t, first, second)

	docs := decodeDocuments(t, first)
	require.Len(t, docs, 1)
	model := docs[0]["model"].(map[string]any)
	assert.Equal(t, 2, model["layers"])
	assert.Contains(t, []any{"adam", "sgd"}, docs[0]["opt"])
}

func TestRun_Expand(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandExpand)
	cfg.SpacePath = testutil.WriteFile(t, dir, "space.hcl", `
dimension "model.layers" {
  values = [1, 2]
}

dimension "opt" {
  values = ["adam", "sgd"]
}
`)

	docs := decodeDocuments(t, runApp(t, cfg))
	require.Len(t, docs, 4)

	var got [][2]any
	for _, d := range docs {
		got = append(got, [2]any{d["model"].(map[string]any)["layers"], d["opt"]})
	}
	assert.Equal(t, [][2]any{{1, "adam"}, {1, "sgd"}, {2, "adam"}, {2, "sgd"}}, got)
}

func TestRun_ExpandRejectsUnknownPath(t *testing.T) {
	cfg, dir := newTestConfig(t, CommandExpand)
	cfg.SpacePath = testutil.WriteFile(t, dir, "space.yaml", "model.dropout: [0.1, 0.2]\n")
	a, _, _ := SetupAppTest(t, cfg)
	require.Error(t, a.Run(context.Background()))
}
