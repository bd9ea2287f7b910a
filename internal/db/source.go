package db

import (
	"path/filepath"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/types"
)

// Source is a transcript reader that may hold resources.
type Source interface {
	types.MessageSource
	Close() error
}

// Open picks a source for path: SQLite databases need a chat id, anything
// else is read as a JSONL chat file.
func Open(path, chatID string) (Source, error) {
	if IsDatabasePath(path) {
		if chatID == "" {
			return nil, errChatIDRequired(path)
		}
		return OpenSQLite(path, chatID)
	}
	return fileSource{JSONLSource{Path: path}}, nil
}

// IsDatabasePath reports whether path looks like a SQLite file.
func IsDatabasePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

type fileSource struct {
	JSONLSource
}

func (fileSource) Close() error { return nil }
