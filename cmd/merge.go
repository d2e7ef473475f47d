package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"newsmerge/merge"
)

func mergeCmd() *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Merge a source record set into a master record set",
		Description: `Merge the rows of a source CSV into a master CSV.

		Rows whose id already exists in the master are dropped, the latest
		version of every row wins and the result is sorted by pubDate
		descending before the master file is rewritten. The master file is
		created if it does not exist yet.

		Prints the master path as the final line on stdout. Exits with
		code 2 when the source file does not exist.

		All other log messages go to stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Path to the source record set (CSV)",
				EnvVars:  []string{"NEWSMERGE_SOURCE"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "master",
				Aliases:  []string{"m"},
				Usage:    "Path to the master record set (CSV)",
				EnvVars:  []string{"NEWSMERGE_MASTER"},
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			source, err := filepath.Abs(ctx.String("source"))
			if err != nil {
				return err
			}
			master, err := filepath.Abs(ctx.String("master"))
			if err != nil {
				return err
			}

			if _, err := merge.Run(osfs.New("/"), source, master); err != nil {
				if errors.Is(err, merge.ErrSourceNotFound) {
					return cli.Exit(err.Error(), 2)
				}
				return err
			}

			fmt.Println(filepath.ToSlash(ctx.String("master")))
			return nil
		},
	}
}
