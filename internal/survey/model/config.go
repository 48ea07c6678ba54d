package model

// ================ Config ================
type SurveyConfig struct {
	DefaultTopic string `envconfig:"SURVEY_DEFAULT_TOPIC" default:"產品滿意度"`
	DefaultCount int    `envconfig:"SURVEY_DEFAULT_COUNT" default:"4"`
	Output       string `envconfig:"SURVEY_OUTPUT" default:"問卷調查結果.csv"`
}

type ArchiveConfig struct {
	RedisTTL        string `envconfig:"ARCHIVE_REDIS_TTL" default:"720h"`
	MongoCollection string `envconfig:"ARCHIVE_MONGO_COLLECTION" default:"questionnaire_records"`
}
