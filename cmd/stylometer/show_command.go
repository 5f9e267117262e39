package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stylometer/internal/store"
	"stylometer/internal/textmodel"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var fromCatalog bool

	cmd := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Summarise a stored model, or list stored models",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				names, err := store.List(cfg.ModelDir)
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Fprintln(out, "no models stored in", cfg.ModelDir)
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			m, err := loadModel(cfg, args[0], fromCatalog)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Model:", m.Name)
			fmt.Fprintln(out, renderTable(
				[]string{"Feature", "Distinct", "Total"},
				modelRows(m),
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "Read the model from the sqlite catalog")
	return cmd
}

func modelRows(m *textmodel.Model) [][]string {
	rows := make([][]string, 0, len(textmodel.Features))
	for _, f := range textmodel.Features {
		var total int
		if f.IntKeyed() {
			total = m.IntCounts(f).Total()
		} else {
			total = m.StringCounts(f).Total()
		}
		rows = append(rows, []string{f.Label(), strconv.Itoa(m.Distinct(f)), strconv.Itoa(total)})
	}
	return rows
}
