package mapping

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTable(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numbers.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLookup(t *testing.T) {
	path := writeTable(t, "origin,destination,sender\nhttps://x.com,+441,+442\n")
	loader := NewLoader(path, discardLogger())

	entry, ok := loader.Lookup("https://x.com")
	require.True(t, ok)
	assert.Equal(t, "+441", entry.Destination)
	assert.Equal(t, "+442", entry.SenderOverride)

	_, ok = loader.Lookup("https://y.com")
	assert.False(t, ok)
}

func TestLookupIsExactMatch(t *testing.T) {
	path := writeTable(t, "origin,destination,sender\nhttps://x.com,+441,\n")
	loader := NewLoader(path, discardLogger())

	// No scheme or host normalization happens in the loader.
	_, ok := loader.Lookup("x.com")
	assert.False(t, ok)
	_, ok = loader.Lookup("HTTPS://X.COM")
	assert.False(t, ok)
}

func TestHeaderAlwaysSkipped(t *testing.T) {
	// Even a header that looks like a data row is discarded.
	path := writeTable(t, "https://header.com,+440,+449\nhttps://x.com,+441,\n")
	loader := NewLoader(path, discardLogger())

	_, ok := loader.Lookup("https://header.com")
	assert.False(t, ok)
	_, ok = loader.Lookup("https://x.com")
	assert.True(t, ok)
}

func TestMalformedRowsDropped(t *testing.T) {
	path := writeTable(t, "origin,destination,sender\n"+
		"https://short.com,+441\n"+ // too few fields
		",+441,+442\n"+ // empty origin
		"https://nodest.com,,+442\n"+ // empty destination
		"\n"+ // blank line
		" https://ok.com , +441 , +442 \n") // whitespace trimmed
	loader := NewLoader(path, discardLogger())

	for _, origin := range []string{"https://short.com", "", "https://nodest.com"} {
		_, ok := loader.Lookup(origin)
		assert.False(t, ok, "origin %q should have been dropped", origin)
	}

	entry, ok := loader.Lookup("https://ok.com")
	require.True(t, ok)
	assert.Equal(t, "+441", entry.Destination)
	assert.Equal(t, "+442", entry.SenderOverride)
}

func TestDuplicateOriginLastWins(t *testing.T) {
	path := writeTable(t, "origin,destination,sender\n"+
		"https://x.com,+441,\n"+
		"https://x.com,+443,+444\n")
	loader := NewLoader(path, discardLogger())

	entry, ok := loader.Lookup("https://x.com")
	require.True(t, ok)
	assert.Equal(t, "+443", entry.Destination)
	assert.Equal(t, "+444", entry.SenderOverride)
}

func TestMissingFileFailsOpen(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), discardLogger())
	_, ok := loader.Lookup("https://x.com")
	assert.False(t, ok)
}

func TestReloadOnEveryLookup(t *testing.T) {
	path := writeTable(t, "origin,destination,sender\n")
	loader := NewLoader(path, discardLogger())

	_, ok := loader.Lookup("https://x.com")
	require.False(t, ok)

	// Table edits take effect without rebuilding the loader.
	require.NoError(t, os.WriteFile(path, []byte("origin,destination,sender\nhttps://x.com,+441,\n"), 0o644))
	entry, ok := loader.Lookup("https://x.com")
	require.True(t, ok)
	assert.Equal(t, "+441", entry.Destination)
}
