package result

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a single record from r. Records written by other languages
// use the same keys but not necessarily the same whitespace or float format.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("decode result: %w", err)
	}
	if rec.Sequence == nil {
		rec.Sequence = []int64{}
	}
	return rec, nil
}

// ReadFile decodes the record stored at path.
func ReadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
