package dataset

import (
	"bufio"
	"os"
	"strings"
)

// ReadSuffixes reads the suffix list from path, one suffix per line. Blank
// lines are ignored. At most max entries are returned; truncated reports
// whether the file held more. The newline is stripped but any other leading
// whitespace is preserved for path construction.
func ReadSuffixes(path string, max int) (suffixes []string, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(suffixes) >= max {
			truncated = true
			break
		}
		suffixes = append(suffixes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	return suffixes, truncated, nil
}

// WriteSuffixes writes the suffix list to path, one per line with a trailing
// newline when the list is non-empty.
func WriteSuffixes(path string, suffixes []string) error {
	var sb strings.Builder
	for _, s := range suffixes {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
