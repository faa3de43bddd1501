package utils

import (
	"bufio"
	"os"
	"strings"
)

// ReadNonEmptyLines reads an import manifest: one path or glob per line, in file
// order. Lines are trimmed; blank lines and lines starting with "#" are dropped.
// Entries are returned as written; resolving relative paths is up to the caller.
func ReadNonEmptyLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
