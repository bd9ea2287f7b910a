package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/google/go-cmp/cmp"
)

func TestReadChatFile(t *testing.T) {
	path := writeChatFile(t,
		`{"user_name":"User","character_name":"Seraphina","chat_metadata":{"note":"x"}}`,
		`{"name":"Seraphina","is_user":false,"is_system":false,"send_date":"May 1, 2024 9:00pm","mes":"Hello there."}`,
		`{"name":"User","is_user":true,"is_system":true,"send_date":"May 1, 2024 9:01pm","mes":"hidden reply"}`,
		`not json at all`,
		`{"name":"Instruction","is_user":false,"is_system":true,"send_date":1714597200000,"mes":"[OOC]","extra":{"type":"narrator"}}`,
		``,
		`{"name":"Seraphina","is_system":false,"mes":""}`,
	)

	messages, err := ReadChatFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := []types.Message{
		{Index: 0, Name: "Seraphina", Text: "Hello there.", SendDate: "May 1, 2024 9:00pm"},
		{Index: 1, Name: "User", IsUser: true, IsHidden: true, Text: "hidden reply", SendDate: "May 1, 2024 9:01pm"},
		{Index: 2, Name: "Instruction", IsHidden: true, ExtraType: "narrator", Text: "[OOC]", SendDate: "1714597200000"},
		{Index: 3, Name: "Seraphina"},
	}
	if diff := cmp.Diff(want, messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestReadChatFileWithoutHeader(t *testing.T) {
	path := writeChatFile(t,
		`{"name":"A","is_system":true,"mes":"one"}`,
		`{"name":"B","mes":"two"}`,
	)
	messages, err := ReadChatFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(messages) != 2 || messages[0].Index != 0 || messages[1].Index != 1 {
		t.Fatalf("unexpected messages: %+v", messages)
	}
	if !messages[0].IsHidden {
		t.Fatal("expected first message hidden")
	}
}

func TestReadChatFileMissing(t *testing.T) {
	messages, err := ReadChatFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript, got %d", len(messages))
	}
}

func TestJSONLSourceHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (JSONLSource{Path: "unused"}).Messages(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
