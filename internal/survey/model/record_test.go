package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		name      string
		questions QuestionSet
		responses ResponseSet
		wantLen   int
		wantDiff  bool
	}{
		{"equal", QuestionSet{"a", "b"}, ResponseSet{"1", "2"}, 2, false},
		{"more questions", QuestionSet{"a", "b", "c", "d"}, ResponseSet{"1", "2", "3"}, 3, true},
		{"more responses", QuestionSet{"a"}, ResponseSet{"1", "2"}, 1, true},
		{"empty", nil, nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, r, diff := Align(tt.questions, tt.responses)
			assert.Len(t, q, tt.wantLen)
			assert.Len(t, r, tt.wantLen)
			assert.Equal(t, tt.wantDiff, diff)
		})
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("咖啡", QuestionSet{"q1", "q2"}, ResponseSet{"a1"})

	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "咖啡", rec.Topic)
	assert.Equal(t, QuestionSet{"q1"}, rec.Questions)
	assert.Equal(t, ResponseSet{"a1"}, rec.Responses)
	assert.False(t, rec.CreatedAt.IsZero())
}
