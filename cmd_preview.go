package main

import (
	"github.com/spf13/cobra"

	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/store"
)

func newPreviewCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Print the first rows of a result file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			path := a.cfg.Survey.Output
			if len(args) == 1 {
				path = args[0]
			}
			_, err := store.Preview(a.console.Out(), path)
			return err
		},
	}
}
