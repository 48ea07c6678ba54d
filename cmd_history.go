package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
)

func newHistoryCmd(current func() *app) *cobra.Command {
	var (
		topic string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived questionnaire records of a topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			ctx := cmd.Context()
			if topic == "" {
				topic = a.cfg.Survey.DefaultTopic
			}

			archives := a.archives(ctx)
			if len(archives) == 0 {
				return errx.New(nil, errx.KindConfig, "no archive configured, set ARCHIVE_REDIS_URL or ARCHIVE_MONGO_URI")
			}

			source, recs, err := archives.List(ctx, topic)
			if err != nil {
				return err
			}

			total, err := archives.Count(ctx, topic)
			if err != nil {
				total = len(recs)
			}

			con := a.console
			con.Title(fmt.Sprintf("「%s」共 %d 筆紀錄 (%s)", topic, total, source))
			if limit > 0 && len(recs) > limit {
				recs = recs[len(recs)-limit:]
			}
			for _, rec := range recs {
				con.Section(fmt.Sprintf("[%s] %s", rec.CreatedAt.Local().Format(time.DateTime), rec.ID))
				if rec.File != "" {
					con.Println("檔案: " + rec.File)
				}
				for i, q := range rec.Questions {
					answer := ""
					if i < len(rec.Responses) {
						answer = rec.Responses[i]
					}
					con.Println(fmt.Sprintf("  %d. %s → %s", i+1, q, answer))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic to list (defaults to SURVEY_DEFAULT_TOPIC)")
	cmd.Flags().IntVar(&limit, "limit", 10, "show only the latest N records, 0 for all")
	return cmd
}
