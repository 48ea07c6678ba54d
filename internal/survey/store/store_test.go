package store

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

var (
	fourQuestions = model.QuestionSet{"您的年齡範圍是？(18-25/26-35/36-45/46以上)", "您對產品的滿意度 (1-5分)？", "您使用的頻率為？(每天/每週/每月/極少)", "您有什麼建議或意見？"}
	fourAnswers   = model.ResponseSet{"26-35", "4", "每週", "更便宜一點"}
)

func TestSaveCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	s := New("")

	got, err := s.Save(fourQuestions, fourAnswers, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string(fourQuestions), rows[0])
	assert.Equal(t, []string(fourAnswers), rows[1])
}

func TestSaveAppendsWhenWidthMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := New("")

	_, err := s.Save(fourQuestions, fourAnswers, path)
	require.NoError(t, err)
	second := model.ResponseSet{"18-25", "5", "每天", ""}
	_, err = s.Save(fourQuestions, second, path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string(fourQuestions), rows[0])
	assert.Equal(t, []string(fourAnswers), rows[1])
	assert.Equal(t, []string(second), rows[2])
	assert.NoFileExists(t, BackupPath(path))
}

func TestSaveRoundTripQuotesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	q := model.QuestionSet{"a, b", `say "hi"`}
	r := model.ResponseSet{"line1\nline2", "ok"}

	_, err := New("").Save(q, r, path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{q, r}, rows)
}

func TestSaveSchemaDriftBacksUpAndRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := New("")

	_, err := s.Save(fourQuestions, fourAnswers, path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	five := append(model.QuestionSet{}, fourQuestions...)
	five = append(five, "第五題？")
	fiveAnswers := model.ResponseSet{"a", "b", "c", "d", "e"}
	got, err := s.Save(five, fiveAnswers, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	backup, err := os.ReadFile(BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, before, backup)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string(five), rows[0])
	assert.Equal(t, []string(fiveAnswers), rows[1])
}

func TestSaveTruncatesMismatchedLengths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	_, err := New("").Save(fourQuestions, fourAnswers[:3], path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 3)
	assert.Equal(t, []string(fourQuestions[:3]), rows[0])
}

func TestSaveEmptyExistingFileStartsOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := New("").Save(fourQuestions, fourAnswers, path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.FileExists(t, BackupPath(path))
}

func TestSaveAppendsAfterMissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("q1,q2\na1,a2"), 0o644))

	_, err := New("").Save(model.QuestionSet{"q1", "q2"}, model.ResponseSet{"b1", "b2"}, path)
	require.NoError(t, err)

	rows := readCSV(t, path)
	assert.Equal(t, [][]string{{"q1", "q2"}, {"a1", "a2"}, {"b1", "b2"}}, rows)
}

func TestSaveAndPreviewTolerateBareQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("q1,q2\n5\"吋,ok\n"), 0o644))

	got, err := New("").Save(model.QuestionSet{"q1", "q2"}, model.ResponseSet{"6吋", "fine"}, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.NoFileExists(t, BackupPath(path))

	var out bytes.Buffer
	rows, err := Preview(&out, path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"5\"吋", "ok"}, rows[1])
	assert.Contains(t, out.String(), "標題列: q1 | q2")
	assert.Contains(t, out.String(), "資料列 1: 5\"吋 | ok")
	assert.Contains(t, out.String(), "資料列 2: 6吋 | fine")
}

func TestSaveFallsBackToBackupPath(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be makes the primary write fail
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	got, err := New("").Save(fourQuestions, fourAnswers, path)
	require.NoError(t, err)
	assert.Equal(t, BackupPath(path), got)

	rows := readCSV(t, got)
	assert.Equal(t, [][]string{fourQuestions, fourAnswers}, rows)
}

func TestSaveReportsUltimateFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	got, err := New("").Save(fourQuestions, fourAnswers, filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.Equal(t, errx.KindStorage, errx.KindOf(err))
}

func TestSaveUsesDefaultPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.csv")

	got, err := New(path).Save(fourQuestions, fourAnswers, "")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}

func TestPreviewMissingFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing.csv")

	rows, err := Preview(&out, path)
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, "檔案 "+path+" 不存在\n", out.String())
}

func TestPreviewPrintsAtMostFourRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := New("")
	for _, answer := range []string{"1", "2", "3", "4", "5"} {
		_, err := s.Save(model.QuestionSet{"q1", "q2"}, model.ResponseSet{answer, "x"}, path)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	rows, err := Preview(&out, path)
	require.NoError(t, err)
	require.Len(t, rows, PreviewRows)

	text := out.String()
	assert.Contains(t, text, "標題列: q1 | q2")
	assert.Contains(t, text, "資料列 1: 1 | x")
	assert.Contains(t, text, "資料列 3: 3 | x")
	assert.NotContains(t, text, "資料列 4")
	assert.Contains(t, text, "...")
}

func TestPreviewShortFileHasNoEllipsis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	_, err := New("").Save(model.QuestionSet{"q1"}, model.ResponseSet{"a"}, path)
	require.NoError(t, err)

	var out bytes.Buffer
	rows, err := Preview(&out, path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.False(t, strings.Contains(out.String(), "..."))
}
