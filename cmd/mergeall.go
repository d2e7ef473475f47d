package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"newsmerge/config"
	"newsmerge/merge"
)

func mergeAllCmd() *cli.Command {
	return &cli.Command{
		Name:  "merge-all",
		Usage: "Merge every configured source into the unified master",
		Description: `Merge the per-source master of every source listed in the
		configuration file into the unified master CSV, one source at a time.

		Sources whose record set is missing are skipped with a warning.
		The command fails only when none of the configured sources could
		be merged.

		Prints the unified master path as the final line on stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/sources.toml",
				Usage:   "Path to sources configuration file",
				EnvVars: []string{"NEWSMERGE_CONFIG"},
			},
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return err
			}

			master, err := filepath.Abs(cfg.Master)
			if err != nil {
				return err
			}

			fs := osfs.New("/")
			merged := 0
			for _, source := range cfg.Sources {
				sourcePath, err := filepath.Abs(source.Master)
				if err != nil {
					return err
				}

				result, err := merge.Run(fs, sourcePath, master)
				if errors.Is(err, merge.ErrSourceNotFound) {
					log.WithFields(log.Fields{
						"source": source.Name,
						"path":   source.Master,
					}).Warn("Record set missing, skipping source")
					continue
				}
				if err != nil {
					return fmt.Errorf("merge %s: %w", source.Name, err)
				}

				log.WithFields(log.Fields{
					"source": source.Name,
					"added":  result.Added,
					"total":  result.Total,
				}).Info("Source merged")
				merged++
			}

			if merged == 0 && len(cfg.Sources) > 0 {
				return cli.Exit("no source record sets found", 2)
			}

			fmt.Println(filepath.ToSlash(cfg.Master))
			return nil
		},
	}
}
