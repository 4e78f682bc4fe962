package result

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode_OtherLanguageLayouts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		language string
		seqLen   int
		seconds  float64
	}{
		{
			name:     "python json.dump indent=2",
			input:    "{\n  \"language\": \"Python\",\n  \"n\": 3,\n  \"sequence\": [\n    1,\n    1,\n    2\n  ],\n  \"seconds\": 12.5\n}",
			language: "Python",
			seqLen:   3,
			seconds:  12.5,
		},
		{
			name:     "c++ stream default float",
			input:    "{\n  \"language\": \"C++\",\n  \"n\": 2,\n  \"sequence\": [1, 2],\n  \"seconds\": 0.412\n}\n",
			language: "C++",
			seqLen:   2,
			seconds:  0.412,
		},
		{
			name:     "missing sequence",
			input:    `{"language": "R", "n": 40, "seconds": 1}`,
			language: "R",
			seqLen:   0,
			seconds:  1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if rec.Language != tt.language {
				t.Errorf("Language = %q, want %q", rec.Language, tt.language)
			}
			if rec.Sequence == nil || len(rec.Sequence) != tt.seqLen {
				t.Errorf("Sequence = %v, want %d non-nil elements", rec.Sequence, tt.seqLen)
			}
			if rec.Seconds != tt.seconds {
				t.Errorf("Seconds = %v, want %v", rec.Seconds, tt.seconds)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := Decode(strings.NewReader(`{"language": "Go", "n": `)); err == nil {
		t.Error("expected an error for truncated JSON")
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "result_go.json")
	if err := WriteFile(path, Record{Language: "Go", N: 2, Sequence: []int64{1, 1}, Seconds: 0.25}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rec, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if rec.N != 2 || len(rec.Sequence) != 2 || rec.Seconds != 0.25 {
		t.Errorf("unexpected record: %+v", rec)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist for a missing file, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SummaryFileName)
	records := []Record{
		{Language: "Python", N: 40, Sequence: []int64{1, 1}, Seconds: 21.337},
		{Language: "C++", N: 40, Sequence: []int64{}, Seconds: 0.412},
	}
	if err := WriteSummary(path, records); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"language\": \"Python\"") {
		t.Errorf("summary should be indented with two spaces, got:\n%s", data)
	}

	got, err := ReadSummary(path)
	if err != nil {
		t.Fatalf("ReadSummary returned error: %v", err)
	}
	if len(got) != 2 || got[1].Language != "C++" || got[1].Sequence == nil {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestReadSummary_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadSummary(filepath.Join(t.TempDir(), SummaryFileName))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
