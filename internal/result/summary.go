package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// SummaryFileName is the default name of the harness summary.
const SummaryFileName = "results.json"

// WriteSummary writes records to path as an indented JSON array.
func WriteSummary(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.OutputError{Path: path, Cause: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		return apperrors.OutputError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	return nil
}

// ReadSummary reads a summary written by WriteSummary. A missing file is
// reported with an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadSummary(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for i := range records {
		if records[i].Sequence == nil {
			records[i].Sequence = []int64{}
		}
	}
	return records, nil
}
