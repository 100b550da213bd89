package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) *Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}
	return m
}

func typeText(m *Model, text string) *Model {
	for _, r := range text {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewMissingFileStartsEmpty(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "nope.txt"), 30)
	assert.Empty(t, m.Suffixes())
	assert.False(t, m.Modified())
}

func TestNewLoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"a.png", "b.png"}))

	m := New(path, 30)
	assert.Equal(t, []string{"a.png", "b.png"}, m.Suffixes())
}

func TestAddSuffix(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "suffixes.txt"), 30)

	m = send(m, key("a"))
	m = typeText(m, "_depth.png")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"_depth.png"}, m.Suffixes())
	assert.True(t, m.Modified())
}

func TestAddRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"a", "b"}))

	m := New(path, 2)
	m = send(m, key("a"))
	m = typeText(m, "c")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"a", "b"}, m.Suffixes())
}

func TestEscCancelsInsert(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "suffixes.txt"), 30)

	m = send(m, key("a"))
	m = typeText(m, "junk")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, m.Suffixes())
	assert.False(t, m.Modified())
}

func TestDeleteUnderCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"a", "b", "c"}))

	m := New(path, 30)
	m = send(m, key("j"), key("d"))

	assert.Equal(t, []string{"a", "c"}, m.Suffixes())
	assert.True(t, m.Modified())
}

func TestDeleteLastEntryMovesCursorUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"a", "b"}))

	m := New(path, 30)
	m = send(m, key("j"), key("d"), key("d"))
	assert.Empty(t, m.Suffixes())
	// Deleting on an empty list must not panic.
	m = send(m, key("d"))
	assert.Empty(t, m.Suffixes())
}

func TestMoveEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"a", "b", "c"}))

	m := New(path, 30)
	m = send(m, key("J")) // move "a" below "b"
	assert.Equal(t, []string{"b", "a", "c"}, m.Suffixes())

	m = send(m, key("K"))
	assert.Equal(t, []string{"a", "b", "c"}, m.Suffixes())
}

func TestWriteSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	m := New(path, 30)

	m = send(m, key("a"))
	m = typeText(m, "x.png")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, key("w"))

	assert.False(t, m.Modified())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x.png\n", string(data))
}

func TestQuit(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "suffixes.txt"), 30)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRenders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suffixes.txt")
	require.NoError(t, dataset.WriteSuffixes(path, []string{"diffuse.png"}))

	m := New(path, 30)
	out := m.View()
	assert.Contains(t, out, "diffuse.png")
	assert.Contains(t, out, "suffix editor")
}
