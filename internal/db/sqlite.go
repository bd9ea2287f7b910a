package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/adamavenir/ghostpanel/internal/types"
	_ "modernc.org/sqlite"
)

const chatMessageColumns = `name, is_user, is_system, extra_type, mes, send_date`

// SQLiteSource reads one chat from a messages table:
//
//	messages(chat_id TEXT, idx INTEGER, name TEXT, is_user INTEGER,
//	         is_system INTEGER, extra_type TEXT, mes TEXT, send_date TEXT)
type SQLiteSource struct {
	db     *sql.DB
	chatID string
}

// OpenSQLite opens path read-only.
func OpenSQLite(path, chatID string) (*SQLiteSource, error) {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &SQLiteSource{db: conn, chatID: chatID}, nil
}

// NewSQLiteSource wraps an existing connection.
func NewSQLiteSource(conn *sql.DB, chatID string) *SQLiteSource {
	return &SQLiteSource{db: conn, chatID: chatID}
}

func (s *SQLiteSource) Messages(ctx context.Context) ([]types.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+chatMessageColumns+` FROM messages WHERE chat_id = ? ORDER BY idx ASC`,
		s.chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []types.Message
	for rows.Next() {
		var (
			msg       types.Message
			extraType sql.NullString
			text      sql.NullString
			sendDate  sql.NullString
		)
		if err := rows.Scan(&msg.Name, &msg.IsUser, &msg.IsHidden, &extraType, &text, &sendDate); err != nil {
			return nil, err
		}
		msg.Index = len(messages)
		msg.ExtraType = extraType.String
		msg.Text = text.String
		msg.SendDate = sendDate.String
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// Close closes the underlying connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
