package command

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/types"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in:\n%s", want, out.String())
}

func TestWatchReportsOutOfBandChanges(t *testing.T) {
	t.Setenv("GHOSTPANEL_NATS_URL", "")
	chatPath := sampleChat(t)

	root := NewRootCmd("test")
	if err := root.ParseFlags([]string{"--config", writeTestConfig(t)}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cc, err := GetContext(root, chatPath)
	if err != nil {
		t.Fatalf("context: %v", err)
	}
	defer cc.Close()

	out := &syncBuffer{}
	watchCmd := NewWatchCmd()
	watchCmd.SetOut(out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, watchCmd, cc) }()

	waitFor(t, out, "--- watching chat.jsonl")
	waitFor(t, out, "Hidden Messages: 3")
	waitFor(t, out, "Messages #1 - #2")

	f, err := os.OpenFile(chatPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open chat: %v", err)
	}
	_, _ = f.WriteString(`{"name":"Bot","is_system":true,"mes":"hidden four"}` + "\n")
	_ = f.Close()

	waitFor(t, out, "Hidden Messages: 4")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestTextSinkSkipsRepeats(t *testing.T) {
	out := &syncBuffer{}
	sink := newTextSink(out)
	view := panel.View{
		Hidden:     panel.Section{Header: panel.HiddenHeader, Empty: panel.HiddenEmpty},
		Boundaries: panel.Section{Header: panel.BoundaryHeader, Empty: panel.BoundaryEmpty},
	}
	sink.RenderTitle("Hidden Messages Overview")
	sink.RenderTitle("Hidden Messages Overview")
	sink.RenderPanel(view)
	sink.RenderPanel(view)

	got := out.String()
	if strings.Count(got, "Hidden Messages Overview") != 1 {
		t.Fatalf("title repeated:\n%s", got)
	}
	if strings.Count(got, "No hidden messages") != 1 {
		t.Fatalf("panel repeated:\n%s", got)
	}
}

func TestFormatView(t *testing.T) {
	view := panel.View{
		Hidden: panel.Section{
			Header: panel.HiddenHeader,
			Entries: []panel.Entry{
				{Kind: panel.EntryRange, ID: 1, Range: types.Range{Start: 1, End: 2}},
				{Kind: panel.EntrySingle, ID: 5, Range: types.Range{Start: 5, End: 5}, Author: "Bot", Age: "2 hours ago", Preview: "hidden three"},
			},
		},
		Boundaries: panel.Section{Header: panel.BoundaryHeader, Empty: panel.BoundaryEmpty},
	}
	want := "Hidden Messages\n" +
		"  Messages #1 - #2\n" +
		"  #5 (Bot, 2 hours ago): hidden three\n" +
		"\n" +
		"Boundary Messages\n" +
		"  No boundary messages\n"
	if got := FormatView(view); got != want {
		t.Fatalf("FormatView:\n got %q\nwant %q", got, want)
	}
}

func TestFormatRanges(t *testing.T) {
	tests := []struct {
		ranges []types.Range
		want   string
	}{
		{nil, "none"},
		{[]types.Range{{Start: 4, End: 4}}, "#4"},
		{[]types.Range{{Start: 1, End: 3}, {Start: 7, End: 7}}, "#1-#3, #7"},
	}
	for _, tt := range tests {
		if got := formatRanges(tt.ranges); got != tt.want {
			t.Errorf("formatRanges(%v) = %q, want %q", tt.ranges, got, tt.want)
		}
	}
}
