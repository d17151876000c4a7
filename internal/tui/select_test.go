package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/cinegraph/imdb"
)

func sampleResults() []imdb.TitleSearchResult {
	return []imdb.TitleSearchResult{
		{ID: "0133093", Title: "The Matrix", Year: 1999, Kind: "movie", Rating: 8.7, Votes: 2000000, Cast: "Keanu Reeves"},
		{ID: "0234215", Title: "The Matrix Reloaded", Year: 2003, Kind: "movie", Rating: 7.2, Votes: 640000},
	}
}

// stubProgram replaces the bubbletea runner and drives the model with
// the given key presses.
func stubProgram(t *testing.T, keys ...tea.KeyMsg) {
	t.Helper()
	orig := runProgram
	runProgram = func(m tea.Model) (tea.Model, error) {
		current := m
		for _, key := range keys {
			current, _ = current.Update(key)
		}
		return current, nil
	}
	t.Cleanup(func() { runProgram = orig })
}

func TestSelectEmptyResultsStops(t *testing.T) {
	result, err := Select("matrix", nil)
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
	assert.Nil(t, result.Selection)
}

func TestSelectReturnsChosenResult(t *testing.T) {
	stubProgram(t, tea.KeyMsg{Type: tea.KeyEnter})

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, "0133093", result.Selection.ID)
}

func TestSelectQuitStops(t *testing.T) {
	stubProgram(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	result, err := Select("matrix", sampleResults())
	require.NoError(t, err)
	assert.Equal(t, ActionStopped, result.Action)
	assert.Nil(t, result.Selection)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "unrated", formatRating(imdb.TitleSearchResult{}))
	assert.Equal(t, "8.7/10 (2000.0K votes)", formatRating(imdb.TitleSearchResult{Rating: 8.7, Votes: 2000000}))
	assert.Equal(t, "6.0/10 (42 votes)", formatRating(imdb.TitleSearchResult{Rating: 6.0, Votes: 42}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "exactly ten", truncate("exactly  ten", 40), "whitespace collapsed")
	assert.Equal(t, "a ver...", truncate("a very long line of text", 8))
}
