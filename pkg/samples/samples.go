// Package samples handles loading and normalizing sample identifier lists.
package samples

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInputNotFound indicates the sample list file is missing or empty.
var ErrInputNotFound = errors.New("sample list not found or empty")

// List is an ordered sequence of sample identifiers.
// Order matches the input file; duplicates are preserved.
type List []string

// Load reads a sample list file and returns the normalized list.
// Returns ErrInputNotFound (wrapped) if the file is missing or contains
// no identifiers after normalization.
func Load(path string) (List, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	list := Normalize(raw)
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s contains no sample identifiers", ErrInputNotFound, path)
	}

	return list, nil
}

// Normalize converts raw sample-list text into an ordered identifier list.
// It tolerates Windows-style line endings, drops blank lines, and removes
// embedded space characters from each identifier. No deduplication: a
// repeated input line produces a repeated entry.
func Normalize(raw []byte) List {
	text := strings.ReplaceAll(string(raw), "\r", "\n")
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	var list List
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		id := strings.ReplaceAll(line, " ", "")
		list = append(list, id)
	}

	return list
}

// WriteFile persists the list, one identifier per line with a trailing
// newline. An existing file is overwritten.
func (l List) WriteFile(path string) error {
	var sb strings.Builder
	for _, id := range l {
		sb.WriteString(id)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write sample list: %w", err)
	}

	return nil
}
