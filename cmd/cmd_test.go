package cmd

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/threedslider/appleseed/config"
	"github.com/threedslider/appleseed/log"
	"github.com/urfave/cli"
)

func newContext(t *testing.T, args ...string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	app := cli.NewApp()
	app.Writer = &buf

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("ordering", "", "")
	for _, f := range BuildFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(app, set, nil), &buf
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	defer log.SetLevel(log.CurrentLevel())

	path := filepath.Join(t.TempDir(), "settings.yaml")
	payload := "partitioner:\n  max_leaf_size: 16\n  intersection_cost: 2\nlogging:\n  level: warning\n"
	if err := os.WriteFile(path, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, _ := newContext(t, "--config", path, "--max-leaf-size", "8", "--workers", "3")
	cfg, err := loadConfig(ctx)
	if err != nil {
		t.Fatal(err)
	}

	exp := config.Default()
	exp.Partitioner.MaxLeafSize = 8
	exp.Partitioner.IntersectionCost = 2
	exp.Build.Workers = 3
	exp.Logging.Level = "warning"
	if !reflect.DeepEqual(cfg, exp) {
		t.Fatalf("expected config %+v; got %+v", exp, cfg)
	}
	if log.CurrentLevel() != log.Warning {
		t.Fatalf("expected log level to be %s; got %s", log.Warning, log.CurrentLevel())
	}
}

func TestLoadConfigValidation(t *testing.T) {
	ctx, _ := newContext(t, "--traversal-cost", "0")
	if _, err := loadConfig(ctx); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid; got %v", err)
	}
}

func TestShowConfig(t *testing.T) {
	defer log.SetLevel(log.CurrentLevel())

	ctx, buf := newContext(t, "--workers", "2")
	if err := ShowConfig(ctx); err != nil {
		t.Fatal(err)
	}
	for _, exp := range []string{"max_leaf_size: 4", "workers: 2", "level: notice"} {
		if !strings.Contains(buf.String(), exp) {
			t.Fatalf("expected output to contain %q; got:\n%s", exp, buf.String())
		}
	}
}

func TestPartitionScenes(t *testing.T) {
	defer log.SetLevel(log.CurrentLevel())

	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "scene.obj")
	orderingFile := filepath.Join(dir, "ordering.txt")

	// Two unit quads far apart along x
	payload := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 10 0 0
v 11 0 0
v 11 1 0
v 10 1 0
f 5 6 7 8
f 1 2 3 4
`
	if err := os.WriteFile(sceneFile, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, _ := newContext(t, "--max-leaf-size", "1", "--ordering", orderingFile, sceneFile)
	if err := PartitionScenes(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(orderingFile)
	if err != nil {
		t.Fatal(err)
	}
	// The quad nearest the origin is ordered first
	exp := []string{"2", "3", "0", "1"}
	if got := strings.Fields(string(data)); !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected ordering %v; got %v", exp, got)
	}
}

func TestPartitionScenesErrors(t *testing.T) {
	defer log.SetLevel(log.CurrentLevel())

	type spec struct {
		args   []string
		expErr string
	}
	specs := []spec{
		{nil, "missing scene file argument"},
		{[]string{"--ordering", "out.txt", "a.obj", "b.obj"}, "--ordering requires a single scene file argument"},
	}

	for index, s := range specs {
		ctx, _ := newContext(t, s.args...)
		if err := PartitionScenes(ctx); err == nil || err.Error() != s.expErr {
			t.Fatalf("[spec %d] expected error %q; got %v", index, s.expErr, err)
		}
	}
}
