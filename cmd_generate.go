package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCmd(current func() *app) *cobra.Command {
	var (
		topic string
		count int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and print questions without collecting answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			if topic == "" {
				topic = a.cfg.Survey.DefaultTopic
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Survey.DefaultCount
			}
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}

			gen, err := a.generator(cmd.Context())
			if err != nil {
				return err
			}
			a.console.Println(fmt.Sprintf("正在生成有關「%s」的問卷問題...", topic))
			a.console.ShowQuestions(gen.Generate(cmd.Context(), topic, count))
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "questionnaire topic")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of questions")
	return cmd
}
