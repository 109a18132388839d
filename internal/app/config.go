package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Commands understood by App.Run.
const (
	CommandUID    = "uid"
	CommandShow   = "show"
	CommandPaths  = "paths"
	CommandDiff   = "diff"
	CommandSample = "sample"
	CommandExpand = "expand"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command    string `validate:"required,oneof=uid show paths diff sample expand"`
	SchemaPath string `validate:"required"` // hcl files
	TypeName   string `validate:"required"`
	ConfigPath string // yaml instance; defaults are used when empty
	OtherPath  string `validate:"required_if=Command diff"`
	SpacePath  string // required by sample and expand
	Seed       uint64
	Lenient    bool

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}
	if cfg.SpacePath == "" && (cfg.Command == CommandSample || cfg.Command == CommandExpand) {
		return nil, fmt.Errorf("SpacePath is required for the %q command", cfg.Command)
	}
	return &cfg, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is a required configuration field and cannot be empty", fe.Field())
	case "required_if":
		return fmt.Sprintf("%s is required for the %q command", fe.Field(), strings.TrimPrefix(fe.Param(), "Command "))
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be one of [%s]", fe.Field(), fe.Value(), fe.Param())
	}
	return fe.Error()
}
