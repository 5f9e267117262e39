package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stylometer/internal/db"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent classifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := db.ListClassifications(cfg.CatalogPath, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no classifications recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				r := rec.Result
				rows = append(rows, []string{
					rec.ID[:8],
					rec.CreatedAt.Local().Format(time.DateTime),
					r.Unknown,
					r.Candidates[0].Name + " vs " + r.Candidates[1].Name,
					r.Winner,
					strconv.Itoa(r.Candidates[0].Votes) + "-" + strconv.Itoa(r.Candidates[1].Votes),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "When", "Unknown", "Sources", "Winner", "Votes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of rows to show (0 for all)")
	return cmd
}
