package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Chative-core-poc-v1/questionnaire/internal/core"
	"github.com/Chative-core-poc-v1/questionnaire/internal/llm"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/archive"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/console"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/generator"
	surveymodel "github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
	pkgmongo "github.com/Chative-core-poc-v1/questionnaire/pkg/mongo"
	pkgredis "github.com/Chative-core-poc-v1/questionnaire/pkg/redis"
)

// AppConfig defines all configurable parameters of the tool,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogDir      string `envconfig:"LOG_DIR" default:"logs"`
	LogName     string `envconfig:"LOG_NAME" default:"questionnaire"`

	// Text generation
	LLM llm.Config

	// Questionnaire
	Survey  surveymodel.SurveyConfig
	Archive surveymodel.ArchiveConfig

	// Infrastructure, both optional
	ArchiveRedis pkgredis.Config `envconfig:"ARCHIVE_REDIS"`
	ArchiveMongo pkgmongo.Config `envconfig:"ARCHIVE_MONGO"`
}

// app carries the state shared by all commands.
type app struct {
	cfg     AppConfig
	console *console.Console
	logFile string
	closers []func()
}

func newApp(envFile string) (*app, error) {
	envErr := godotenv.Load(envFile)

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	logFile, err := logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Dir:         cfg.LogDir,
		Name:        cfg.LogName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise logger: %w", err)
	}
	if envErr != nil {
		logx.Warn().Err(envErr).Str("file", envFile).Msg("Could not load env file")
	}

	logx.Info().
		Str("environment", cfg.Environment).
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.Model).
		Msg("Questionnaire tool starting")

	return &app{
		cfg:     cfg,
		console: console.New(os.Stdin, os.Stdout),
		logFile: logFile,
	}, nil
}

func (a *app) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	cm, err := llm.NewChatModel(ctx, a.cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return cm, nil
}

func (a *app) generator(ctx context.Context) (*generator.Generator, error) {
	cm, err := a.chatModel(ctx)
	if err != nil {
		return nil, err
	}
	return generator.New(ctx, cm,
		generator.WithModelName(a.cfg.LLM.Model),
		generator.WithFallbackNotifier(func(err error) {
			a.console.Notice(fmt.Sprintf("無法連接生成服務，使用預設問題: %v", err))
		}),
	)
}

// archives connects every configured archive. Connection failures are
// logged and the archive is skipped.
func (a *app) archives(ctx context.Context) archive.Multi {
	var out archive.Multi

	if a.cfg.ArchiveRedis.Enabled() {
		ttl, err := time.ParseDuration(a.cfg.Archive.RedisTTL)
		if err != nil {
			logx.Warn().Err(err).Str("ttl", a.cfg.Archive.RedisTTL).Msg("Invalid ARCHIVE_REDIS_TTL, records will not expire")
			ttl = 0
		}
		rdb, err := a.cfg.ArchiveRedis.New(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("Failed to connect Redis archive")
		} else {
			a.closers = append(a.closers, func() { _ = rdb.Close() })
			out = append(out, archive.NewRedisArchive(rdb, ttl))
			logx.Debug().Dur("ttl", ttl).Msg("Redis archive connected")
		}
	}

	if a.cfg.ArchiveMongo.Enabled() {
		client, db, err := a.cfg.ArchiveMongo.New(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("Failed to connect Mongo archive")
		} else {
			a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
			out = append(out, archive.NewMongoArchive(db.Collection(a.cfg.Archive.MongoCollection)))
			logx.Debug().Str("database", a.cfg.ArchiveMongo.Database).Msg("Mongo archive connected")
		}
	}

	return out
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	logx.Close()
}
