package compare

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Chative-core-poc-v1/questionnaire/internal/llm/observers"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/format"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

//go:embed template/summary_prompt.txt
var summaryPrompt string

//go:embed template/compare_prompt.txt
var comparePrompt string

// Sample documents used when the caller supplies none.
const (
	SampleDocument1 = "產品X是一款手機，具有5吋螢幕、64GB儲存空間和1200萬畫素相機。電池容量3000mAh，支援快充。"
	SampleDocument2 = "產品Y是一款手機，配備6吋螢幕、128GB儲存以及1600萬畫素相機。電池3500mAh，並具備快充與無線充電功能。"
)

const (
	NodeSummaryPrompt = "SummaryPrompt"
	NodeComparePrompt = "ComparePrompt"
	NodeChatModel     = "ChatModel"
	NodeAnswer        = "Answer"
)

// Result holds both summaries and the model's comparison, reasoning removed.
type Result struct {
	FirstSummary  string
	SecondSummary string
	Comparison    string
}

// Comparer summarises two documents and asks the model to contrast them.
type Comparer struct {
	summarize compose.Runnable[map[string]any, string]
	compare   compose.Runnable[map[string]any, string]
	modelName string
}

// New compiles the summary and comparison chains around cm.
func New(ctx context.Context, cm model.BaseChatModel, modelName string) (*Comparer, error) {
	if cm == nil {
		return nil, fmt.Errorf("chat model is nil")
	}

	summarize, err := compileChain(ctx, cm, NodeSummaryPrompt, summaryPrompt)
	if err != nil {
		return nil, fmt.Errorf("error compiling summary chain: %w", err)
	}
	compare, err := compileChain(ctx, cm, NodeComparePrompt, comparePrompt)
	if err != nil {
		return nil, fmt.Errorf("error compiling compare chain: %w", err)
	}

	return &Comparer{summarize: summarize, compare: compare, modelName: modelName}, nil
}

func compileChain(ctx context.Context, cm model.BaseChatModel, promptNode, text string) (compose.Runnable[map[string]any, string], error) {
	chain := compose.NewChain[map[string]any, string]()
	chain.
		AppendChatTemplate(prompt.FromMessages(schema.GoTemplate, schema.UserMessage(text)), compose.WithNodeName(promptNode)).
		AppendChatModel(cm, compose.WithNodeName(NodeChatModel)).
		AppendLambda(compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", fmt.Errorf("model returned no message")
			}
			return strings.TrimSpace(format.StripReasoning(msg.Content)), nil
		}), compose.WithNodeName(NodeAnswer))
	return chain.Compile(ctx)
}

func (c *Comparer) invoke(ctx context.Context, r compose.Runnable[map[string]any, string], vars map[string]any) (string, error) {
	return r.Invoke(ctx, vars,
		compose.WithChatModelOption(model.WithTemperature(0)),
		compose.WithCallbacks(observers.NewAllCallbacks(c.modelName)))
}

// Compare runs two summaries and one comparison. Errors of the generation
// service are returned as is; there is no fallback answer.
func (c *Comparer) Compare(ctx context.Context, first, second string) (*Result, error) {
	logx.Info().Str("document", first).Msg("Summarising document 1")
	s1, err := c.invoke(ctx, c.summarize, map[string]any{"Document": first})
	if err != nil {
		return nil, fmt.Errorf("summarise document 1: %w", err)
	}
	logx.Info().Str("summary", s1).Msg("Document 1 summary")

	logx.Info().Str("document", second).Msg("Summarising document 2")
	s2, err := c.invoke(ctx, c.summarize, map[string]any{"Document": second})
	if err != nil {
		return nil, fmt.Errorf("summarise document 2: %w", err)
	}
	logx.Info().Str("summary", s2).Msg("Document 2 summary")

	cmp, err := c.invoke(ctx, c.compare, map[string]any{"First": s1, "Second": s2})
	if err != nil {
		return nil, fmt.Errorf("compare documents: %w", err)
	}
	logx.Info().Str("comparison", cmp).Msg("Document comparison finished")

	return &Result{FirstSummary: s1, SecondSummary: s2, Comparison: cmp}, nil
}
