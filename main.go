package main

import (
	"context"
	"fmt"
	"os"

	"github.com/devmatteini/dag/handlers"
	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var version = "0.0.1"

func main() {
	var verbose bool

	app := cli.NewApp()
	app.Name = "dag"
	app.Usage = "Download an asset from the latest or a specific GitHub release"
	app.Version = version

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}
	app.Before = func(c *cli.Context) error {
		log.Setup(os.Stderr, verbose)
		return nil
	}

	selectFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "select, s",
			Usage: "Untagged asset name, e.g. dag-{tag}-x86_64-unknown-linux-gnu.tar.gz; {version} is the tag without its leading v (interactive when missing)",
		}, cli.StringFlag{
			Name:  "tag, t",
			Usage: "Release tag (latest release when missing)",
		}, cli.BoolFlag{
			Name:  "verify",
			Usage: "Verify the SHA-256 checksum published with the release",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "download",
			Usage:     "Download a release asset",
			ArgsUsage: "<owner/repo>",
			Flags: append(selectFlags, cli.StringFlag{
				Name:  "output, o",
				Usage: "Path to write the asset to (defaults to the asset name)",
			}),
			Action: func(c *cli.Context) error {
				ctx := context.Background()
				h, repository, err := setup(ctx, c)
				if err != nil {
					return err
				}
				path, err := h.Download(ctx, handlers.DownloadOptions{
					Repository: repository,
					Tag:        models.Tag(c.String("tag")),
					Select:     c.String("select"),
					Output:     c.String("output"),
					Verify:     c.Bool("verify"),
				})
				if err != nil {
					return err
				}
				fmt.Printf("Saved %s\n", color.GreenString(path))
				return nil
			},
		},
		{
			Name:      "install",
			Usage:     "Download a release asset and install its executable",
			ArgsUsage: "<owner/repo>",
			Flags: append(selectFlags,
				cli.StringFlag{
					Name:  "output, o",
					Usage: "Directory to install the executable into",
					Value: ".",
				}, cli.StringFlag{
					Name:  "install-file",
					Usage: "Name of the executable inside the archive (defaults to the repository name)",
				}),
			Action: func(c *cli.Context) error {
				ctx := context.Background()
				h, repository, err := setup(ctx, c)
				if err != nil {
					return err
				}
				res, err := h.Install(ctx, handlers.InstallOptions{
					Repository:  repository,
					Tag:         models.Tag(c.String("tag")),
					Select:      c.String("select"),
					Output:      c.String("output"),
					InstallFile: c.String("install-file"),
					Verify:      c.Bool("verify"),
				})
				if err != nil {
					return err
				}
				fmt.Printf("Installed %s from %s\n", color.GreenString(res.Path), res.FileType)
				return nil
			},
		},
		{
			Name:      "untag",
			Usage:     "List release assets with the name to pass to --select",
			ArgsUsage: "<owner/repo>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "tag, t",
					Usage: "Release tag (latest release when missing)",
				},
			},
			Action: func(c *cli.Context) error {
				ctx := context.Background()
				h, repository, err := setup(ctx, c)
				if err != nil {
					return err
				}
				_, err = h.Untag(ctx, repository, models.Tag(c.String("tag")))
				return err
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func setup(ctx context.Context, c *cli.Context) (*handlers.Handler, models.Repository, error) {
	if c.NArg() != 1 {
		return nil, models.Repository{}, errors.Errorf("expected exactly one <owner/repo> argument, got %d", c.NArg())
	}
	repository, err := models.ParseRepository(c.Args().First())
	if err != nil {
		return nil, models.Repository{}, err
	}

	h, err := handlers.New(ctx, handlers.ConfigFromEnv(), os.Stdin, os.Stdout)
	if err != nil {
		return nil, models.Repository{}, err
	}
	return h, repository, nil
}
