package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/format"
)

type fakeChatModel struct {
	content string
	err     error
	calls   int
	input   []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.content, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

const sampleOutput = `<think>
使用者想要四個問題，其中一題要評分。
</think>
1. 請問您的職業是？
2. [評分題] 您對本店咖啡的滿意度？
3. 您多久來店消费一次？
` + "```\nnote\n```"

func newTestGenerator(t *testing.T, cm model.BaseChatModel, opts ...Option) *Generator {
	t.Helper()
	g, err := New(context.Background(), cm, opts...)
	require.NoError(t, err)
	return g
}

func TestGenerateNormalisesModelOutput(t *testing.T) {
	cm := &fakeChatModel{content: sampleOutput}
	g := newTestGenerator(t, cm)

	got := g.Generate(context.Background(), "咖啡", 4)

	require.Len(t, got, 4)
	assert.Equal(t, "請問您的職業是？", got[0])
	assert.Equal(t, "您對本店咖啡的滿意度 (1-5分)？", got[1])
	assert.Equal(t, "您多久來店消費一次 (從不/偶爾/經常/總是)？", got[2])
	assert.Equal(t, "您對於咖啡還有什麼其他建議或意見？", got[3])
	assert.Equal(t, 1, cm.calls)
}

func TestGenerateRendersPrompt(t *testing.T) {
	cm := &fakeChatModel{content: "您的職業是？"}
	g := newTestGenerator(t, cm)

	g.Generate(context.Background(), "線上課程", 6)

	require.Len(t, cm.input, 1)
	assert.Equal(t, schema.User, cm.input[0].Role)
	assert.Contains(t, cm.input[0].Content, "「線上課程」")
	assert.Contains(t, cm.input[0].Content, "設計6個問卷問題")
}

func TestGenerateExactCount(t *testing.T) {
	cm := &fakeChatModel{content: sampleOutput}
	g := newTestGenerator(t, cm)
	for n := 0; n <= 10; n++ {
		t.Run(fmt.Sprintf("count=%d", n), func(t *testing.T) {
			assert.Len(t, g.Generate(context.Background(), "咖啡", n), n)
		})
	}
}

func TestGenerateZeroSkipsModel(t *testing.T) {
	cm := &fakeChatModel{content: sampleOutput}
	g := newTestGenerator(t, cm)

	assert.Empty(t, g.Generate(context.Background(), "咖啡", 0))
	assert.Zero(t, cm.calls)
}

func TestGenerateFallsBackOnError(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("connection refused")}
	var notified error
	g := newTestGenerator(t, cm, WithFallbackNotifier(func(err error) { notified = err }))

	got := g.Generate(context.Background(), "咖啡", 4)

	assert.Equal(t, []string{
		"請問您對咖啡的了解程度？ (1-5分)",
		"您認為咖啡最重要的特點是什麼？",
		"您使用咖啡相關服務的頻率為？ (從不/偶爾/經常/總是)",
		"您對咖啡有什麼建議或意見？",
	}, []string(got))
	require.Error(t, notified)
	assert.Contains(t, notified.Error(), "connection refused")
	assert.Equal(t, errx.KindGeneration, errx.KindOf(notified))
}

func TestGenerateFallbackHonoursCount(t *testing.T) {
	g := newTestGenerator(t, &fakeChatModel{err: errors.New("boom")})
	assert.Len(t, g.Generate(context.Background(), "咖啡", 2), 2)
	assert.Len(t, g.Generate(context.Background(), "咖啡", 7), 7)
}

func TestGenerateAnnotationGuarantees(t *testing.T) {
	rules := format.Default()
	rating := regexp.MustCompile(`\(\d+-\d+分\)`)
	options := regexp.MustCompile(`\([^)]+/[^)]+\)`)

	cm := &fakeChatModel{content: "請評估講師表現\n您參加活動的頻率？\n您经常推薦給朋友嗎"}
	g := newTestGenerator(t, cm, WithRules(rules))

	for _, q := range g.Generate(context.Background(), "產品滿意度", 8) {
		if rules.IsRating(q) {
			assert.Regexp(t, rating, q)
		}
		if rules.IsFrequency(q) {
			assert.Regexp(t, options, q)
		}
	}
}

func TestNewRejectsNilModel(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)
}
