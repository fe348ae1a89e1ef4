package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jobwatch/internal/store"
)

var (
	listType  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored job ads",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := store.Open(cfg.DBPath())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Migrate(db.Pool); err != nil {
			return err
		}

		ads, err := store.ListAds(cmd.Context(), db.Pool, store.ListAdsOpts{
			JobType: listType,
			Limit:   listLimit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDEADLINE\tTYPE\tTITLE")
		for _, a := range ads {
			deadline := a.Deadline
			if deadline == "" {
				deadline = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, deadline, a.JobType, a.Title)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		total, err := store.CountAds(cmd.Context(), db.Pool)
		if err != nil {
			return err
		}
		fmt.Printf("%d of %d stored ads shown\n", len(ads), total)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", "", "filter by job type")
	listCmd.Flags().IntVar(&listLimit, "limit", 200, "maximum rows to print")
}
