package result

import (
	"bufio"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// FormatSeconds renders a duration in seconds with exactly six fractional
// digits. Negative and NaN values render as zero.
func FormatSeconds(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

// Encode writes r to w in the fixed layout shared by every language:
//
//	{
//	  "language": "Go",
//	  "n": 40,
//	  "sequence": [1, 1, 2],
//	  "seconds": 0.000123
//	}
//
// The sequence stays on one line, separated by ", ", and the output ends
// with a newline.
func Encode(w io.Writer, r Record) error {
	buf := make([]byte, 0, 64+len(r.Sequence)*12)

	buf = append(buf, "{\n  \"language\": "...)
	buf = strconv.AppendQuote(buf, r.Language)
	buf = append(buf, ",\n  \"n\": "...)
	buf = strconv.AppendInt(buf, int64(r.N), 10)
	buf = append(buf, ",\n  \"sequence\": ["...)
	buf = appendSequence(buf, r.Sequence)
	buf = append(buf, "],\n  \"seconds\": "...)
	buf = append(buf, FormatSeconds(r.Seconds)...)
	buf = append(buf, "\n}\n"...)

	_, err := w.Write(buf)
	return err
}

// JoinSequence renders values as a comma-and-space separated list, the way
// the sequence appears inside a result file.
func JoinSequence(seq []int64) string {
	return string(appendSequence(nil, seq))
}

func appendSequence(buf []byte, seq []int64) []byte {
	for i, v := range seq {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = strconv.AppendInt(buf, v, 10)
	}
	return buf
}

// WriteFile writes r to path using Encode, creating the parent directory if
// needed. The file handle is always closed; a failed close is reported as a
// write failure. Errors are returned as apperrors.OutputError.
func WriteFile(path string, r Record) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.OutputError{Path: path, Cause: err}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = apperrors.OutputError{Path: path, Cause: cerr}
		}
	}()

	w := bufio.NewWriter(file)
	if err := Encode(w, r); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	if err := w.Flush(); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	return nil
}
