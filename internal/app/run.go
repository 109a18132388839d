package app

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/expconf/config"
	"github.com/specialistvlad/expconf/internal/ctxlog"
	"github.com/specialistvlad/expconf/internal/spacefile"
	"github.com/specialistvlad/expconf/searchspace"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	base, err := a.load(a.config.ConfigPath)
	if err != nil {
		return err
	}

	switch a.config.Command {
	case CommandUID:
		_, err = fmt.Fprintln(a.outW, base.UID())
	case CommandShow:
		err = a.writeYAML(base)
	case CommandPaths:
		err = a.paths(base)
	case CommandDiff:
		err = a.diff(base)
	case CommandSample:
		err = a.sample(ctx, base)
	case CommandExpand:
		err = a.expand(ctx, base)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// load builds an instance from a YAML file, or from defaults when path is
// empty.
func (a *App) load(path string) (*config.Config, error) {
	opts := []config.NewOption{config.WithLogger(a.logger)}
	if a.config.Lenient {
		opts = append(opts, config.Lenient())
	}
	if path == "" {
		a.logger.Debug("No instance file given, using defaults.", "type", a.spec.Name())
		return a.spec.New(nil, opts...)
	}
	c, err := a.spec.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Instance loaded.", "path", path, "uid", c.UID())
	return c, nil
}

func (a *App) writeYAML(c *config.Config) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	_, err = a.outW.Write(data)
	return err
}

func (a *App) paths(c *config.Config) error {
	out, err := c.DotPathYAML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.outW, out)
	return err
}

func (a *App) diff(c *config.Config) error {
	other, err := a.load(a.config.OtherPath)
	if err != nil {
		return err
	}
	for _, d := range c.DiffStrings(other, true) {
		if _, err := fmt.Fprintln(a.outW, d); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) sample(ctx context.Context, base *config.Config) error {
	space, err := spacefile.Load(ctx, a.config.SpacePath)
	if err != nil {
		return err
	}
	var r *rand.Rand
	if a.config.Seed != 0 {
		r = rand.New(rand.NewPCG(a.config.Seed, a.config.Seed))
	}
	c, err := base.Sample(space, searchspace.RandomSampler(r))
	if err != nil {
		return err
	}
	a.logger.Info("Instance sampled.", "uid", c.UID())
	return a.writeYAML(c)
}

func (a *App) expand(ctx context.Context, base *config.Config) error {
	space, err := spacefile.Load(ctx, a.config.SpacePath)
	if err != nil {
		return err
	}
	configs, err := base.Expand(space)
	if err != nil {
		return err
	}
	a.logger.Info("Search space expanded.", "instances", len(configs))
	for i, c := range configs {
		if i > 0 {
			if _, err := fmt.Fprintln(a.outW, "---"); err != nil {
				return err
			}
		}
		if err := a.writeYAML(c); err != nil {
			return err
		}
	}
	return nil
}
