package dataset

import (
	"strings"
	"unicode"

	"github.com/gobwas/glob"
)

// Filter keeps only the suffixes matching the glob pattern. Matching is done
// against the cleaned suffix (trailing whitespace stripped), so "*.png"
// matches " 1.png" as well. An empty pattern keeps everything.
func Filter(suffixes []string, pattern string) ([]string, error) {
	if pattern == "" {
		return suffixes, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		clean := strings.TrimRightFunc(s, unicode.IsSpace)
		if g.Match(clean) {
			kept = append(kept, s)
		}
	}
	return kept, nil
}
