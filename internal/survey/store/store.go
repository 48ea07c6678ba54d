package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

const (
	DefaultPath  = "問卷調查結果.csv"
	BackupSuffix = ".backup"
)

// Store appends questionnaire results to CSV files. The first row of a file
// is the question header; every later row is one response set.
type Store struct {
	defaultPath string
}

func New(defaultPath string) *Store {
	if defaultPath == "" {
		defaultPath = DefaultPath
	}
	return &Store{defaultPath: defaultPath}
}

// BackupPath is where a replaced file or a failed save ends up.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Save writes one response row to path and returns the file actually written.
// When the existing header has a different width the old content is copied to
// the backup path and the file is started over. If writing fails, header and
// row go to the backup path instead; when that fails too an errx storage error
// is returned with an empty path.
func (s *Store) Save(questions model.QuestionSet, responses model.ResponseSet, path string) (string, error) {
	if path == "" {
		path = s.defaultPath
	}

	q, r, mismatched := model.Align(questions, responses)
	if mismatched {
		logx.Warn().
			Int("questions", len(questions)).
			Int("responses", len(responses)).
			Msg("question and response counts differ, truncating to the shorter")
	}

	err := s.write(path, q, r)
	if err == nil {
		logx.Info().Str("path", path).Int("columns", len(q)).Msg("questionnaire result saved")
		return path, nil
	}
	logx.Error().Err(err).Str("path", path).Msg("failed to save questionnaire result")

	backup := BackupPath(path)
	if ferr := writeFresh(backup, q, r); ferr != nil {
		logx.Error().Err(ferr).Str("path", backup).Msg("fallback save failed")
		return "", errx.Storage(errors.Join(err, ferr))
	}
	logx.Warn().Str("path", backup).Msg("questionnaire result saved to backup file")
	return backup, nil
}

func (s *Store) write(path string, q model.QuestionSet, r model.ResponseSet) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return writeFresh(path, q, r)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	width, err := headerWidth(data)
	if err != nil {
		return fmt.Errorf("parse header of %s: %w", path, err)
	}
	if width > 0 && width == len(q) {
		return appendRow(path, data, r)
	}

	backup := BackupPath(path)
	logx.Warn().
		Str("path", path).
		Int("existing_columns", width).
		Int("columns", len(q)).
		Str("backup", backup).
		Msg("questions do not match existing file, backing up and starting a new file")
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	return writeFresh(path, q, r)
}

// headerWidth returns the column count of the first record, 0 for an empty file.
func headerWidth(data []byte) (int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(header), nil
}

func appendRow(path string, existing []byte, row model.ResponseSet) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if n := len(existing); n > 0 && existing[n-1] != '\n' {
		if _, err := f.Write([]byte("\n")); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return writeRows(f, row)
}

func writeFresh(path string, q model.QuestionSet, r model.ResponseSet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return writeRows(f, []string(q), []string(r))
}

func writeRows(w io.Writer, rows ...[]string) error {
	writer := csv.NewWriter(w)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
