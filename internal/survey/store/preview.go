package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// PreviewRows is the number of rows Preview prints: the header plus three.
const PreviewRows = 4

// Preview prints up to PreviewRows rows of the CSV file at path, pipe
// delimited, and returns them. A missing file prints a not-found line and
// yields no rows and no error.
func Preview(w io.Writer, path string) ([][]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "檔案 %s 不存在\n", path)
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := make([][]string, 0, PreviewRows)
	more := false
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read %s: %w", path, err)
		}
		if len(rows) == PreviewRows {
			more = true
			break
		}
		rows = append(rows, row)
	}

	fmt.Fprintf(w, "\n===== CSV檔案預覽 (%s) =====\n", path)
	for i, row := range rows {
		if i == 0 {
			fmt.Fprintf(w, "標題列: %s\n", strings.Join(row, " | "))
			continue
		}
		fmt.Fprintf(w, "資料列 %d: %s\n", i, strings.Join(row, " | "))
	}
	if more {
		fmt.Fprintln(w, "...")
	}
	fmt.Fprintln(w, "===== 預覽結束 =====")
	return rows, nil
}
