package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/archive"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/console"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/store"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

type surveyOptions struct {
	topic  string
	count  int
	output string
	yes    bool
	// set when --count was given explicitly
	countSet bool
}

type questionGenerator interface {
	Generate(ctx context.Context, topic string, count int) model.QuestionSet
}

func addSurveyFlags(cmd *cobra.Command, opts *surveyOptions) {
	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "questionnaire topic (prompted when empty)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of questions (prompted when not set)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "CSV file to save to (prompted when empty)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "start collecting answers without confirmation")
}

func newSurveyCmd(current func() *app) *cobra.Command {
	opts := &surveyOptions{}
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Generate a questionnaire, collect answers and save them to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurveyCmd(cmd, current(), opts)
		},
	}
	addSurveyFlags(cmd, opts)
	return cmd
}

func runSurveyCmd(cmd *cobra.Command, a *app, opts *surveyOptions) error {
	ctx := cmd.Context()
	opts.countSet = cmd.Flags().Changed("count")

	gen, err := a.generator(ctx)
	if err != nil {
		return err
	}
	return runSurvey(ctx, surveyDeps{
		console:  a.console,
		gen:      gen,
		store:    store.New(a.cfg.Survey.Output),
		archives: a.archives(ctx),
		defaults: a.cfg.Survey,
	}, opts)
}

type surveyDeps struct {
	console  *console.Console
	gen      questionGenerator
	store    *store.Store
	archives archive.Multi
	defaults model.SurveyConfig
}

// runSurvey is the interactive flow: topic, count, generation, confirmation,
// answers, save, archive and preview. Only a cancelled ctx ends it with an
// error; a failed save is reported on the console.
func runSurvey(ctx context.Context, d surveyDeps, opts *surveyOptions) error {
	con := d.console
	con.Title("==== AI問卷調查系統 ====")

	topic := opts.topic
	if topic == "" {
		var err error
		if topic, err = con.Prompt(ctx, "請輸入您想要調查的主題: ", ""); err != nil {
			return err
		}
		if topic == "" {
			topic = d.defaults.DefaultTopic
			con.Println(fmt.Sprintf("未輸入主題，使用預設主題: %s", topic))
		}
	}

	count := opts.count
	if !opts.countSet {
		var err error
		label := fmt.Sprintf("請問需要幾個問題 (預設為%d): ", d.defaults.DefaultCount)
		if count, err = con.PromptInt(ctx, label, d.defaults.DefaultCount); err != nil {
			return err
		}
	} else if count < 0 {
		con.Notice(fmt.Sprintf("輸入無效，使用預設問題數量: %d", d.defaults.DefaultCount))
		count = d.defaults.DefaultCount
	}

	con.Println(fmt.Sprintf("\n正在生成有關「%s」的問卷問題...", topic))
	questions := d.gen.Generate(ctx, topic, count)
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(questions) == 0 {
		con.Notice("沒有問題可以收集回答")
		return nil
	}

	con.Println("\n問卷已生成，包含以下問題:")
	con.ShowQuestions(questions)

	if !opts.yes {
		start, err := con.Confirm(ctx, "\n是否開始收集回答？(y/n): ")
		if err != nil {
			return err
		}
		if !start {
			con.Println("已取消問卷調查")
			logx.Info().Str("topic", topic).Msg("Questionnaire cancelled by user")
			return nil
		}
	}

	responses, err := con.Collect(ctx, questions)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		if path, err = con.Prompt(ctx, "請輸入儲存檔案路徑 (直接按Enter使用預設路徑): ", ""); err != nil {
			return err
		}
	}

	saved, err := d.store.Save(questions, responses, path)
	if err != nil {
		logx.Error().Err(err).Str("kind", string(errx.KindOf(err))).Msg("Questionnaire result was not saved")
		con.Notice(fmt.Sprintf("無法儲存問卷結果: %v", err))
		return nil
	}
	con.Println(fmt.Sprintf("問卷結果已儲存至 %s！", saved))

	if len(d.archives) > 0 {
		rec := model.NewRecord(topic, questions, responses)
		rec.File = saved
		if err := d.archives.Append(ctx, rec); err != nil {
			con.Notice(fmt.Sprintf("部分封存失敗: %v", err))
		}
	}

	if _, err := store.Preview(con.Out(), saved); err != nil {
		con.Notice(fmt.Sprintf("預覽檔案時發生錯誤: %v", err))
	}
	return nil
}
