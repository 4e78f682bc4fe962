// Package harness runs the benchmark implementation of every language one
// after the other, captures their output, and collects their result records.
package harness

import (
	"strings"

	"github.com/agbru/fibbench/internal/result"
)

// Language describes how to build, run and clean up one implementation.
// Every command is an argv vector executed inside the bench directory.
type Language struct {
	Name    string
	Prepare [][]string
	Command []string
	Cleanup [][]string
}

// Slug returns the identifier used in the result file name.
func (l Language) Slug() string { return result.Slug(l.Name) }

// ResultFile returns the name of the file the implementation writes.
func (l Language) ResultFile() string { return result.FileName(l.Name) }

// goPackage is built by import path so the bench directory may sit anywhere
// inside the module.
const goPackage = "github.com/agbru/fibbench/cmd/fibbench"

// DefaultLanguages returns the built-in implementations in run order.
func DefaultLanguages() []Language {
	return []Language{
		{
			Name:    "Python",
			Command: []string{"python", "fib.py"},
		},
		{
			Name:    "C++",
			Prepare: [][]string{{"g++", "fib.cpp", "-o", "fib_bin"}},
			Command: []string{"./fib_bin"},
			Cleanup: [][]string{{"rm", "fib_bin"}},
		},
		{
			Name:    "Java",
			Prepare: [][]string{{"javac", "Fib.java"}},
			Command: []string{"java", "-cp", ".", "fib"},
			Cleanup: [][]string{{"rm", "fib.class"}},
		},
		{
			Name:    "R",
			Command: []string{"Rscript", "fib.R"},
		},
		{
			Name:    "PHP",
			Command: []string{"php", "fib.php"},
		},
		{
			Name:    "Go",
			Prepare: [][]string{{"go", "build", "-o", "fib_go", goPackage}},
			Command: []string{"./fib_go"},
			Cleanup: [][]string{{"rm", "fib_go"}},
		},
	}
}

// Names returns the display names of langs.
func Names(langs []Language) []string {
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.Name
	}
	return names
}

// Select returns the languages whose names match one of names,
// case-insensitively, preserving the order of all. An empty names selects
// everything.
func Select(all []Language, names []string) []Language {
	if len(names) == 0 {
		return all
	}
	var out []Language
	for _, l := range all {
		for _, n := range names {
			if strings.EqualFold(l.Name, n) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
