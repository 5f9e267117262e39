package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stylometer/internal/db"
	"stylometer/internal/ingest"
	"stylometer/internal/similarity"
	"stylometer/internal/textmodel"
	"stylometer/internal/workspace"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var unknownFiles []string
	var unknownTexts []string
	var fromCatalog bool
	var noRecord bool
	var saveReport bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify UNKNOWN SOURCE1 SOURCE2",
		Short: "Decide which of two stored sources more likely wrote UNKNOWN",
		Long: "Scores UNKNOWN against both sources on five features and gives each " +
			"feature's vote to the closer source. UNKNOWN names a stored model unless " +
			"--unknown-file or --unknown-text is given, in which case it is built on the fly.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var unknown *textmodel.Model
			if len(unknownFiles) > 0 || len(unknownTexts) > 0 {
				unknown = textmodel.New(args[0])
				for _, path := range unknownFiles {
					if err := ingest.AddFile(unknown, path); err != nil {
						return err
					}
				}
				for _, text := range unknownTexts {
					unknown.AddString(text)
				}
			} else {
				unknown, err = loadModel(cfg, args[0], fromCatalog)
				if err != nil {
					return err
				}
			}

			if unknown.Empty() {
				ctx.logger.Warn().Str("model", unknown.Name).Msg("unknown text has no words; every feature will tie")
			}

			source1, err := loadModel(cfg, args[1], fromCatalog)
			if err != nil {
				return err
			}
			source2, err := loadModel(cfg, args[2], fromCatalog)
			if err != nil {
				return err
			}

			result, err := similarity.Classify(unknown, source1, source2)
			if err != nil {
				return err
			}

			runID := ""
			if !noRecord {
				runID, err = db.RecordClassification(cfg.CatalogPath, result)
				if err != nil {
					return err
				}
			}
			if saveReport {
				if runID == "" {
					runID = "run-" + time.Now().UTC().Format("20060102-150405.000")
				}
				path, err := workspace.SaveReport(cfg.WorkspaceDir, workspace.Report{
					RunID:     runID,
					CreatedAt: time.Now().UTC(),
					Result:    result,
				})
				if err != nil {
					return err
				}
				ctx.logger.Info().Str("path", path).Msg("report saved")
			}
			ctx.logger.Debug().Str("run", runID).Str("winner", result.Winner).Msg("classification done")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVar(&unknownFiles, "unknown-file", nil, "Build UNKNOWN from this file instead of a stored model (repeatable)")
	cmd.Flags().StringArrayVar(&unknownTexts, "unknown-text", nil, "Build UNKNOWN from this literal text (repeatable)")
	cmd.Flags().BoolVar(&fromCatalog, "from-catalog", false, "Read stored models from the sqlite catalog")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not add the result to the classification history")
	cmd.Flags().BoolVar(&saveReport, "save-report", false, "Write a JSON report into the workspace reports directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printResult(w io.Writer, r similarity.Result) error {
	headers := []string{"Source"}
	aligns := []columnAlignment{alignLeft}
	for _, f := range textmodel.Features {
		headers = append(headers, f.Label())
		aligns = append(aligns, alignRight)
	}
	headers = append(headers, "Votes")
	aligns = append(aligns, alignRight)

	rows := make([][]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		row := []string{c.Name}
		for _, s := range c.Scores {
			row = append(row, strconv.FormatFloat(s, 'f', 3, 64))
		}
		row = append(row, strconv.Itoa(c.Votes))
		rows = append(rows, row)
	}

	if _, err := fmt.Fprintln(w, renderTable(headers, rows, aligns)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s is more likely to have come from %s\n", r.Unknown, r.Winner)
	return err
}
