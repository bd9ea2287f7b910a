package db

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/adamavenir/ghostpanel/internal/types"
)

// chatLineRecord is one line of a host chat JSONL file.
type chatLineRecord struct {
	Name     string          `json:"name"`
	IsUser   bool            `json:"is_user"`
	IsSystem bool            `json:"is_system"`
	SendDate json.RawMessage `json:"send_date"`
	Mes      *string         `json:"mes"`
	Extra    *struct {
		Type string `json:"type"`
	} `json:"extra"`
	ChatMetadata json.RawMessage `json:"chat_metadata"`
	UserName     *string         `json:"user_name"`
}

func (r chatLineRecord) isHeader() bool {
	return r.Mes == nil && (r.ChatMetadata != nil || r.UserName != nil)
}

func (r chatLineRecord) toMessage(index int) types.Message {
	msg := types.Message{
		Index:    index,
		Name:     r.Name,
		IsUser:   r.IsUser,
		IsHidden: r.IsSystem,
		SendDate: parseSendDate(r.SendDate),
	}
	if r.Mes != nil {
		msg.Text = *r.Mes
	}
	if r.Extra != nil {
		msg.ExtraType = r.Extra.Type
	}
	return msg
}

// send_date is a string in current chat files and a number in old ones.
func parseSendDate(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

func readJSONLLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadChatFile parses a chat transcript. The header line and malformed lines
// are skipped; a missing file is an empty transcript.
func ReadChatFile(filePath string) ([]types.Message, error) {
	lines, err := readJSONLLines(filePath)
	if err != nil {
		return nil, err
	}

	messages := make([]types.Message, 0, len(lines))
	for _, line := range lines {
		var record chatLineRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}
		if record.isHeader() {
			continue
		}
		messages = append(messages, record.toMessage(len(messages)))
	}
	return messages, nil
}

// JSONLSource reads a chat file on every snapshot.
type JSONLSource struct {
	Path string
}

func (s JSONLSource) Messages(ctx context.Context) ([]types.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadChatFile(s.Path)
}
