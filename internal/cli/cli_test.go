package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/expconf/internal/app"
)

func TestParse(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-s", "schema", "-type", "Experiment", "-space", "space.yaml", "-seed", "3", "-log-level", "DEBUG", "expand",
	}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, &app.Config{
		Command:    app.CommandExpand,
		SchemaPath: "schema",
		TypeName:   "Experiment",
		SpacePath:  "space.yaml",
		Seed:       3,
		LogFormat:  "text",
		LogLevel:   "debug",
	}, cfg)
}

func TestParse_LongSchemaFlagWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-schema", "a", "-s", "b", "-type", "T", "uid"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.SchemaPath)
}

func TestParse_ShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"-schema", "s", "-type", "T"}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"-bogus", "uid"}, wantErr: "flag provided but not defined: -bogus"},
		{name: "unknown command", args: []string{"-s", "s", "-type", "T", "run"}, wantErr: `invalid Command "run"`},
		{name: "missing schema", args: []string{"-type", "T", "uid"}, wantErr: "SchemaPath is a required"},
		{name: "missing space", args: []string{"-s", "s", "-type", "T", "sample"}, wantErr: "SpacePath is required"},
		{name: "bad log format", args: []string{"-s", "s", "-type", "T", "-log-format", "xml", "uid"}, wantErr: "LogFormat"},
		{name: "extra args", args: []string{"-s", "s", "-type", "T", "uid", "show"}, wantErr: "unexpected arguments"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
