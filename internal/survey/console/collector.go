package console

import (
	"context"
	"fmt"

	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
)

// ShowQuestions prints the numbered question list.
func (c *Console) ShowQuestions(questions model.QuestionSet) {
	for i, q := range questions {
		c.Println(c.styles.Question.Render(fmt.Sprintf("%d. %s", i+1, q)))
	}
}

// Collect asks every question in order and returns one answer per question.
// Answers are not validated; a closed input yields empty answers. A cancelled
// ctx stops collection and returns its error.
func (c *Console) Collect(ctx context.Context, questions model.QuestionSet) (model.ResponseSet, error) {
	responses := make(model.ResponseSet, 0, len(questions))
	c.Println()
	c.Section("===== 開始問卷調查 =====")
	for i, q := range questions {
		c.Println(c.styles.Question.Render(fmt.Sprintf("問題 %d: %s", i+1, q)))
		answer, err := c.ReadLine(ctx, "您的回答: ")
		if ctx.Err() != nil {
			return responses, ctx.Err()
		}
		if err != nil {
			answer = ""
		}
		responses = append(responses, answer)
	}
	c.Section("===== 問卷完成 =====")
	c.Println()
	return responses, nil
}
