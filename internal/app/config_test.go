package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	valid := Config{
		Command:    CommandShow,
		SchemaPath: "schema.hcl",
		TypeName:   "Experiment",
		LogFormat:  "text",
		LogLevel:   "info",
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing schema", mutate: func(c *Config) { c.SchemaPath = "" }, wantErr: "SchemaPath is a required"},
		{name: "missing type", mutate: func(c *Config) { c.TypeName = "" }, wantErr: "TypeName is a required"},
		{name: "unknown command", mutate: func(c *Config) { c.Command = "run" }, wantErr: `invalid Command "run"`},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: `invalid LogFormat "xml"`},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: `invalid LogLevel "trace"`},
		{name: "diff needs other", mutate: func(c *Config) { c.Command = CommandDiff }, wantErr: `OtherPath is required for the "diff" command`},
		{name: "sample needs space", mutate: func(c *Config) { c.Command = CommandSample }, wantErr: `SpacePath is required for the "sample" command`},
		{name: "expand needs space", mutate: func(c *Config) { c.Command = CommandExpand }, wantErr: `SpacePath is required for the "expand" command`},
		{
			name:   "expand with space",
			mutate: func(c *Config) { c.Command = CommandExpand; c.SpacePath = "space.yaml" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			got, err := NewConfig(cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, *got)
		})
	}
}
