package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "newsmerge",
		Usage: "Merge harvested news-article record sets into master CSV files",
		Description: `Merges per-source canonical news-article CSV files into
		cumulative master CSV files.

		Each run reads a source record set and a master record set, drops
		source rows whose id is already present in the master, keeps the
		latest version of every row, sorts the result by pubDate descending
		and writes it back to the master location. The master's column set
		is the union of the columns seen in both files.

		Flags can generally be set via environment variables, e.g.:

		--source => NEWSMERGE_SOURCE=data/canonical/hayom/hayom_canonical.csv
		--master => NEWSMERGE_MASTER=data/master/master_news.csv
		`,
		Commands: []*cli.Command{
			mergeCmd(),
			mergeAllCmd(),
			statsCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
