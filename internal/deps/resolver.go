// Package deps extracts textual import references from source files. The
// scan is line-based and purely lexical: it does not resolve paths against a
// module root or verify that a referenced file exists.
package deps

import (
	"os"
	"strings"
)

// Resolver scans source files for import-like lines and returns the quoted
// path token of each match.
type Resolver struct {
	// ReadFile is swappable for tests; defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// New returns a Resolver reading from the local filesystem.
func New() *Resolver {
	return &Resolver{ReadFile: os.ReadFile}
}

// Resolve returns the referenced path tokens of the file at path, in source
// order, duplicates included. An unreadable file yields an empty list rather
// than an error: a missing file must not block the batch.
func (r *Resolver) Resolve(path string) []string {
	content, err := r.ReadFile(path)
	if err != nil {
		return nil
	}
	var refs []string
	for _, line := range strings.Split(string(content), "\n") {
		if tok, ok := importToken(line); ok {
			refs = append(refs, tok)
		}
	}
	return refs
}

// importToken extracts the first quoted path from a line if the line looks
// like an import statement.
func importToken(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "import"):
	case strings.HasPrefix(trimmed, "from"):
	case strings.HasPrefix(trimmed, "export") && strings.Contains(trimmed, " from "):
	default:
		return "", false
	}
	return firstQuoted(trimmed)
}

// firstQuoted returns the first single- or double-quoted token in line.
func firstQuoted(line string) (string, bool) {
	start := strings.IndexAny(line, `"'`)
	if start < 0 {
		return "", false
	}
	quote := line[start]
	end := strings.IndexByte(line[start+1:], quote)
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}
