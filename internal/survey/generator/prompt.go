package generator

import (
	_ "embed"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/questionnaire_prompt.txt
var questionnairePrompt string

const (
	varTopic = "Topic"
	varCount = "Count"
)

// newQuestionnaireTemplate builds the instruction sent to the model. It is a
// single user turn, the way the local model expects a plain completion prompt.
func newQuestionnaireTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(questionnairePrompt),
	)
}

func promptVars(topic string, count int) map[string]any {
	return map[string]any{
		varTopic: topic,
		varCount: count,
	}
}
