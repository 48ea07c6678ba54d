package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is one completed questionnaire, the unit handed to archives.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Topic     string      `json:"topic" bson:"topic"`
	Questions QuestionSet `json:"questions" bson:"questions"`
	Responses ResponseSet `json:"responses" bson:"responses"`
	File      string      `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"createdAt"`
}

// NewRecord stamps a fresh ID and creation time on an aligned question/response pair.
func NewRecord(topic string, questions QuestionSet, responses ResponseSet) *Record {
	q, r, _ := Align(questions, responses)
	return &Record{
		ID:        uuid.NewString(),
		Topic:     topic,
		Questions: q,
		Responses: r,
		CreatedAt: time.Now().UTC(),
	}
}
