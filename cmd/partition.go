package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/threedslider/appleseed/asset/wavefront"
	"github.com/threedslider/appleseed/bvh"
	"github.com/threedslider/appleseed/config"
	"github.com/threedslider/appleseed/types"
	"github.com/urfave/cli"
)

// Build a hierarchy over the triangles of each scene argument and display
// the build stats.
func PartitionScenes(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing scene file argument")
	}

	orderingFile := ctx.String("ordering")
	if orderingFile != "" && ctx.NArg() != 1 {
		return errors.New("--ordering requires a single scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(sceneFile, ".obj") {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		sc, err := wavefront.ReadFile(sceneFile)
		if err != nil {
			return err
		}

		ordering, stats, err := partition(cfg, sc.BBoxes())
		if err != nil {
			return err
		}
		logger.Noticef("partitioned %s:\n%s", sceneFile, stats)

		if orderingFile != "" {
			if err = writeOrdering(orderingFile, ordering); err != nil {
				return err
			}
			logger.Noticef("wrote item ordering to %s", orderingFile)
		}
	}

	return nil
}

// Run a build over boxes and return the final item ordering.
func partition(cfg *config.Config, boxes []types.AABB3) ([]int, bvh.Stats, error) {
	p, err := bvh.NewSAHPartitioner[float32, types.AABB3](cfg.Partitioner.BVH())
	if err != nil {
		return nil, bvh.Stats{}, err
	}

	stats := bvh.NewBuilder(p, bvh.BuildOptions{Workers: cfg.Build.Workers}).Build(boxes)
	return p.ItemOrdering(), stats, nil
}

// Write one item index per line.
func writeOrdering(path string, ordering []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create ordering file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, item := range ordering {
		w.WriteString(strconv.Itoa(item))
		w.WriteByte('\n')
	}
	if err = w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
