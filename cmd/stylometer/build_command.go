package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stylometer/internal/db"
	"stylometer/internal/ingest"
	"stylometer/internal/store"
	"stylometer/internal/textmodel"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var texts []string
	var appendExisting bool
	var keepGoing bool
	var skipCatalog bool

	cmd := &cobra.Command{
		Use:   "build NAME [FILE...]",
		Short: "Build a source model from text files and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			name, files := args[0], args[1:]
			if len(files) == 0 && len(texts) == 0 {
				return errors.New("build needs at least one FILE or --text")
			}
			if err := store.ValidateName(name); err != nil {
				return err
			}

			m := textmodel.New(name)
			if appendExisting && store.Exists(cfg.ModelDir, name) {
				m, err = store.Read(cfg.ModelDir, name)
				if err != nil {
					return err
				}
			}

			added := 0
			for _, path := range files {
				if err := ingest.AddFile(m, path); err != nil {
					if !keepGoing {
						return err
					}
					ctx.logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable source")
					continue
				}
				ctx.logger.Debug().Str("model", name).Str("file", path).Msg("file added")
				added++
			}
			for _, text := range texts {
				m.AddString(text)
				added++
			}
			if added == 0 {
				return fmt.Errorf("no readable input for model %s", name)
			}

			if err := store.Save(cfg.ModelDir, m); err != nil {
				return err
			}
			if !skipCatalog {
				if err := db.PersistModel(cfg.CatalogPath, m); err != nil {
					return err
				}
			}
			ctx.logger.Info().Str("model", name).Int("inputs", added).Int("tokens", m.Words.Total()).Msg("model saved")
			fmt.Fprintln(cmd.OutOrStdout(), m.String())
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&texts, "text", nil, "Add a literal string to the model (repeatable)")
	cmd.Flags().BoolVar(&appendExisting, "append", false, "Add to the stored model instead of starting empty")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Skip unreadable files instead of failing")
	cmd.Flags().BoolVar(&skipCatalog, "no-catalog", false, "Do not copy the model into the sqlite catalog")
	return cmd
}
