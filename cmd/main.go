package main

import (
	"context"
	"fmt"
	"os"

	"github.com/devmatteini/dag/handlers"
	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/manifest"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func main() {
	var verbose bool
	var file string
	var target string

	app := cli.NewApp()
	app.Name = "dag-sync"
	app.Usage = "Download or install every release asset listed in a manifest"
	app.Version = "0.0.1"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "file, f",
			Usage:       "Manifest file",
			Value:       "dag.yaml",
			Destination: &file,
		}, cli.StringFlag{
			Name:        "target",
			Usage:       "Handle only the entry with this name",
			Destination: &target,
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {
		ctx := context.Background()
		log.Setup(os.Stderr, verbose)

		entries, err := manifest.Load(file)
		if err != nil {
			return err
		}
		entries = manifest.Filter(entries, target)
		if len(entries) == 0 && target != "" {
			return errors.Errorf("no entry named %q in %s", target, file)
		}

		h, err := handlers.New(ctx, handlers.ConfigFromEnv(), os.Stdin, os.Stdout)
		if err != nil {
			return err
		}

		if failed := h.Sync(ctx, entries); failed > 0 {
			return errors.Errorf("%d of %d entries failed", failed, len(entries))
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
