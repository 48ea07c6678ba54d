package generator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/llm/observers"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/format"
	surveymodel "github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

const (
	NodePrompt    = "QuestionnairePrompt"
	NodeChatModel = "QuestionnaireChatModel"
	NodeExtract   = "ExtractContent"
)

// Option customises a Generator.
type Option func(*Generator)

// WithRules replaces the embedded normalisation rules.
func WithRules(r *format.Rules) Option {
	return func(g *Generator) { g.rules = r }
}

// WithModelName sets the name used for usage cost logging.
func WithModelName(name string) Option {
	return func(g *Generator) { g.modelName = name }
}

// WithFallbackNotifier registers a hook called when the default questions are used.
func WithFallbackNotifier(fn func(err error)) Option {
	return func(g *Generator) { g.onFallback = fn }
}

// Generator synthesises questionnaire questions through a chat model.
type Generator struct {
	runnable   compose.Runnable[map[string]any, string]
	rules      *format.Rules
	modelName  string
	onFallback func(err error)
}

// New compiles the prompt -> model -> content chain around cm.
func New(ctx context.Context, cm model.BaseChatModel, opts ...Option) (*Generator, error) {
	if cm == nil {
		return nil, fmt.Errorf("chat model is nil")
	}

	g := &Generator{rules: format.Default()}
	for _, opt := range opts {
		opt(g)
	}

	chain := compose.NewChain[map[string]any, string]()
	chain.
		AppendChatTemplate(newQuestionnaireTemplate(), compose.WithNodeName(NodePrompt)).
		AppendChatModel(cm, compose.WithNodeName(NodeChatModel)).
		AppendLambda(compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil {
				return "", fmt.Errorf("model returned no message")
			}
			return msg.Content, nil
		}), compose.WithNodeName(NodeExtract))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling questionnaire chain")
		return nil, fmt.Errorf("error compiling questionnaire chain: %w", err)
	}

	g.runnable = runnable
	logx.Debug().Msg("Questionnaire chain compiled successfully")
	return g, nil
}

// Generate returns exactly count questions about topic. Any failure of the
// generation service is logged and answered with the default question set.
func (g *Generator) Generate(ctx context.Context, topic string, count int) (questions surveymodel.QuestionSet) {
	if count <= 0 {
		return surveymodel.QuestionSet{}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("questionnaire generation panic: %v", r)
			logx.Error().Err(err).Msg("Recovered from panic during generation")
			questions = g.fallback(topic, count, err)
		}
	}()

	raw, err := g.runnable.Invoke(ctx, promptVars(topic, count),
		compose.WithCallbacks(observers.NewAllCallbacks(g.modelName)))
	if err != nil {
		return g.fallback(topic, count, err)
	}

	questions = g.rules.Normalize(raw, topic, count)
	logx.Info().
		Str("topic", topic).
		Int("count", count).
		Int("raw_len", len(raw)).
		Msg("Questionnaire generated")
	return questions
}

func (g *Generator) fallback(topic string, count int, err error) surveymodel.QuestionSet {
	err = errx.Generation(err)
	logx.Warn().Err(err).Str("topic", topic).Msg("Could not reach the generation service, using default questions")
	if g.onFallback != nil {
		g.onFallback(err)
	}
	return g.rules.Defaults(topic, count)
}
