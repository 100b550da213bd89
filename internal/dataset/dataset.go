// Package dataset turns a prefix plus a suffix list into the ordered set of
// grid entries that drive the viewer: resolved paths, display labels and
// per-entry resolution errors. It also owns suffix-file I/O and the
// change watcher that triggers grid reloads.
package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Dav0ud/imagegridviewer/internal/errors"
)

// DefaultSuffixFile is looked up next to the prefix when no suffix file is
// named on the command line.
const DefaultSuffixFile = "igridvu_suffix.txt"

// Entry is one dataset row: a display label paired with a resolved image
// path, or with the error that prevented resolution. Exactly one of
// {usable path, Err} is meaningful.
type Entry struct {
	Label  string
	Suffix string
	Path   string
	Err    *errors.LoadError
}

// Position returns the grid cell for the zero-based entry index given a
// fixed column count.
func Position(index, columns int) (row, col int) {
	return index / columns, index % columns
}

// Assemble resolves each suffix against the prefix, preserving input order.
// Only trailing whitespace is stripped from a suffix; leading whitespace is
// part of the filename. A suffix naming a ".." component, or a resolved path
// that escapes the prefix's base directory, is rejected with a PathTraversal
// error and never reaches the loader.
func Assemble(prefix string, suffixes []string) []Entry {
	prefixIsDir := false
	if info, err := os.Stat(prefix); err == nil && info.IsDir() {
		prefixIsDir = true
	}

	baseDir := prefix
	if !prefixIsDir {
		baseDir = filepath.Dir(prefix)
	}

	var baseErr *errors.LoadError
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		baseErr = errors.BaseDirError(baseDir, err)
	} else if info, statErr := os.Stat(baseAbs); statErr != nil || !info.IsDir() {
		baseErr = errors.BaseDirError(baseDir, statErr)
	}

	entries := make([]Entry, 0, len(suffixes))
	for _, suffix := range suffixes {
		clean := strings.TrimRightFunc(suffix, unicode.IsSpace)

		entry := Entry{
			Label:  stem(clean),
			Suffix: clean,
		}

		if hasDotDot(clean) {
			entry.Err = errors.TraversalError(clean)
			entries = append(entries, entry)
			continue
		}

		if baseErr != nil {
			entry.Err = baseErr
			entries = append(entries, entry)
			continue
		}

		var resolved string
		if prefixIsDir {
			resolved = filepath.Join(prefix, clean)
		} else {
			resolved = prefix + clean
		}

		if contained, err := withinBase(baseAbs, resolved); err != nil {
			entry.Err = errors.BaseDirError(baseDir, err)
		} else if !contained {
			entry.Err = errors.TraversalError(resolved)
		} else {
			entry.Path = resolved
		}
		entries = append(entries, entry)
	}
	return entries
}

// hasDotDot reports whether the suffix names a ".." path component. This has
// to be checked on the suffix itself: under a file prefix the suffix is
// concatenated, which fuses a leading ".." into the prefix's last component
// ("img_" + "../x" is "img_../x") and hides it from lexical cleaning.
func hasDotDot(suffix string) bool {
	for _, part := range strings.Split(filepath.ToSlash(suffix), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// withinBase reports whether path stays inside the base directory once both
// are made absolute. Second line of defense behind hasDotDot, covering
// absolute suffixes and symlinked bases.
func withinBase(baseAbs, path string) (bool, error) {
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(baseAbs, pathAbs)
	if err != nil {
		return false, err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return true, nil
}

// stem returns the base name without its extension, the display label for a
// grid cell.
func stem(suffix string) string {
	base := filepath.Base(suffix)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
