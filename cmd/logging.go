package cmd

import (
	"github.com/threedslider/appleseed/log"
	"github.com/urfave/cli"
)

var logger = log.New("appleseed")

// Apply the configured log level; the global -v and -vv flags take
// precedence over it.
func setupLogging(ctx *cli.Context, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
