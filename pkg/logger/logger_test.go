package logx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Chative-core-poc-v1/questionnaire/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "qa_agent_20250309_140507.log", LogFileName("qa_agent", at))
	assert.Equal(t, "app_20250309_140507.log", LogFileName("", at))
}

func TestInitWritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	path, err := Init(LoggerOpts{Environment: core.Production, Dir: dir, Name: "questionnaire", Console: &console})
	require.NoError(t, err)
	t.Cleanup(Close)

	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	Info().Str("topic", "coffee").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, console.String(), "hello")
}

func TestInitWithoutDirHasNoFile(t *testing.T) {
	var console bytes.Buffer
	path, err := Init(LoggerOpts{Environment: core.Development, Console: &console})
	require.NoError(t, err)
	assert.Empty(t, path)

	Debug().Msg("debug visible in development")
	assert.Contains(t, console.String(), "debug visible in development")
}
