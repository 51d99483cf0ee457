package cmd

import (
	"fmt"

	"github.com/threedslider/appleseed/config"
	"github.com/urfave/cli"
)

// Flags shared by all commands that build hierarchies.
var BuildFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "load settings from a YAML file",
	},
	cli.IntFlag{
		Name:  "max-leaf-size",
		Value: config.Default().Partitioner.MaxLeafSize,
		Usage: "max number of items a leaf may hold",
	},
	cli.Float64Flag{
		Name:  "traversal-cost",
		Value: config.Default().Partitioner.InteriorTraversalCost,
		Usage: "SAH cost of traversing an interior node",
	},
	cli.Float64Flag{
		Name:  "intersection-cost",
		Value: config.Default().Partitioner.IntersectionCost,
		Usage: "SAH cost of intersecting a single item",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Value: config.Default().Build.Workers,
		Usage: "number of build workers",
	},
}

// Load settings from the config file (if any) and apply explicitly set
// flags on top of them.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("max-leaf-size") {
		cfg.Partitioner.MaxLeafSize = ctx.Int("max-leaf-size")
	}
	if ctx.IsSet("traversal-cost") {
		cfg.Partitioner.InteriorTraversalCost = ctx.Float64("traversal-cost")
	}
	if ctx.IsSet("intersection-cost") {
		cfg.Partitioner.IntersectionCost = ctx.Float64("intersection-cost")
	}
	if ctx.IsSet("workers") {
		cfg.Build.Workers = ctx.Int("workers")
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	if err = setupLogging(ctx, cfg.Logging.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Print the effective settings as YAML.
func ShowConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprint(ctx.App.Writer, string(data))
	return nil
}
