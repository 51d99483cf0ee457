package main

import (
	"fmt"
	"os"

	"github.com/threedslider/appleseed/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "appleseed"
	app.Usage = "partition scene geometry into bounding volume hierarchies using the surface area heuristic"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "partition",
			Usage: "build a BVH over the triangles of wavefront obj scenes",
			Description: `
Parse triangle geometry from each wavefront obj file and recursively partition
the triangle bounding boxes using the surface area heuristic.

Build statistics are displayed for each scene. When --ordering is specified the
final triangle ordering is written to the given file, one index per line.`,
			ArgsUsage: "scene_file1.obj scene_file2.obj ...",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "ordering, o",
					Usage: "write the final item ordering to this file",
				},
			}, cmd.BuildFlags...),
			Action: cmd.PartitionScenes,
		},
		{
			Name:   "config",
			Usage:  "display the effective settings as YAML",
			Flags:  cmd.BuildFlags,
			Action: cmd.ShowConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
