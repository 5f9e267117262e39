package main

import (
	"github.com/spf13/cobra"

	"stylometer/internal/similarity"
	"stylometer/internal/textmodel"
)

var demoSources = []struct {
	name string
	text string
}{
	{"source1", "It is interesting that she is interested."},
	{"source2", "I am very, very excited about this!"},
	{"mystery", "Is he interested? No, but I am."},
}

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Classify a built-in sentence against two built-in sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models := make([]*textmodel.Model, 0, len(demoSources))
			for _, s := range demoSources {
				m := textmodel.New(s.name)
				m.AddString(s.text)
				models = append(models, m)
			}
			result, err := similarity.Classify(models[2], models[0], models[1])
			if err != nil {
				return err
			}
			return result.Report(cmd.OutOrStdout())
		},
	}
}
