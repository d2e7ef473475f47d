package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"newsmerge/merge"
	"newsmerge/models"
	"newsmerge/records"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Report basic statistics about a record set",
		Description: `Read a record set and report its row count, field schema,
		number of rows with a resolvable id, and the newest and oldest
		parsable pubDate.

		Useful for inspecting a master file after a merge without opening
		it in a spreadsheet. Prints the report to stdout and all log
		messages to stderr.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the record set (CSV)",
				EnvVars:  []string{"NEWSMERGE_FILE"},
				Required: true,
			},
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			path, err := filepath.Abs(ctx.String("file"))
			if err != nil {
				return err
			}

			set, err := records.NewReader(osfs.New("/")).Read(path)
			if err != nil {
				return err
			}

			withID := 0
			var newest, oldest time.Time
			for _, record := range set.Records {
				if record.ID() != "" {
					withID++
				}
				t := merge.ParsePubDate(record.PubDate())
				if t.IsZero() {
					continue
				}
				if newest.IsZero() || t.After(newest) {
					newest = t
				}
				if oldest.IsZero() || t.Before(oldest) {
					oldest = t
				}
			}

			fields := lo.Map(set.Fields, func(field string, _ int) string {
				return models.SafeString(field)
			})

			fmt.Printf("rows: %d\n", set.Len())
			fmt.Printf("rows with id: %d\n", withID)
			fmt.Printf("fields: %s\n", strings.Join(fields, ", "))
			if !newest.IsZero() {
				fmt.Printf("newest: %s\n", newest.Format(time.RFC3339))
				fmt.Printf("oldest: %s\n", oldest.Format(time.RFC3339))
			}
			return nil
		},
	}
}
