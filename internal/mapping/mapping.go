// Package mapping resolves a submission origin to its destination phone
// number via a flat comma-delimited table.
package mapping

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
)

// Entry is one row of the origin table.
type Entry struct {
	Origin         string
	Destination    string
	SenderOverride string
}

// Loader reads the table fresh on every lookup, so edits to the file take
// effect without a restart. It fails open: any read problem yields an empty
// table and a warning log, never an error to the caller.
type Loader struct {
	path   string
	logger *slog.Logger
}

func NewLoader(path string, logger *slog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger,
	}
}

// Lookup reloads the table and returns the entry for origin. The comparison
// is an exact string match; callers must normalize the key beforehand if they
// need scheme or host folding.
func (l *Loader) Lookup(origin string) (Entry, bool) {
	entries := l.load()
	entry, ok := entries[origin]
	return entry, ok
}

func (l *Loader) load() map[string]Entry {
	file, err := os.Open(l.path)
	if err != nil {
		l.logger.Warn("mapping table unavailable, using empty table",
			slog.String("path", l.path), slog.Any("error", err))
		return map[string]Entry{}
	}
	defer file.Close()

	entries := make(map[string]Entry)
	scanner := bufio.NewScanner(file)
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		origin := strings.TrimSpace(parts[0])
		destination := strings.TrimSpace(parts[1])
		if origin == "" || destination == "" {
			continue
		}
		// Duplicate origins: last row wins.
		entries[origin] = Entry{
			Origin:         origin,
			Destination:    destination,
			SenderOverride: strings.TrimSpace(parts[2]),
		}
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn("mapping table read failed, using empty table",
			slog.String("path", l.path), slog.Any("error", err))
		return map[string]Entry{}
	}
	return entries
}
