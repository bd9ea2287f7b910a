package chat

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/adamavenir/ghostpanel/internal/badge"
	"github.com/adamavenir/ghostpanel/internal/core"
	"github.com/adamavenir/ghostpanel/internal/panel"
	"github.com/adamavenir/ghostpanel/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) drain() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs
	r.msgs = nil
	return msgs
}

func sampleTranscript() []types.Message {
	return []types.Message{
		{Index: 0, Name: "Alice", Text: "hello"},
		{Index: 1, Name: "Bob", IsHidden: true, Text: "first secret"},
		{Index: 2, Name: "Bob", IsHidden: true, Text: "second secret"},
		{Index: 3, Name: "Alice", Text: "visible again"},
		{Index: 4, Name: "Instruction", IsHidden: true, ExtraType: "narrator", Text: "scene note"},
		{Index: 5, Name: "Alice", Text: "the end"},
	}
}

func fastConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Badge.InMs = 1
	cfg.Badge.OutMs = 1
	cfg.Badge.BounceMs = 1
	return cfg
}

func newTestModel(t *testing.T, messages []types.Message, last int) (*Model, *recorder) {
	t.Helper()
	source := types.MessageSourceFunc(func(context.Context) ([]types.Message, error) {
		return messages, nil
	})
	m, err := NewModel(Options{Source: source, ChatName: "test", Config: fastConfig(), Last: last})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(m.Close)
	rec := &recorder{}
	m.send = rec.send
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, rec
}

// settle waits for badge animations and replays their frames into the model.
func settle(m *Model, rec *recorder) {
	m.panel.Wait()
	for _, msg := range rec.drain() {
		m.Update(msg)
	}
}

func TestAppReadyComputesOverview(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 20)

	m.Update(hostEventMsg{event: types.EventAppReady})
	settle(m, rec)

	if m.title != "Hidden Messages: 2" {
		t.Fatalf("title: got %q", m.title)
	}
	if m.badgeCount != "2" {
		t.Fatalf("badge: got %q", m.badgeCount)
	}
	if len(m.badgeAnims) != 0 {
		t.Fatalf("animations should be cleared, got %v", m.badgeAnims)
	}
	if !strings.Contains(m.View(), "Hidden Messages: 2") {
		t.Fatal("trigger should show the counter title")
	}
}

func TestBadgeFrames(t *testing.T) {
	m, _ := newTestModel(t, nil, 20)
	value := "4"
	m.Update(badgeFrameMsg{count: &value})
	m.Update(badgeFrameMsg{add: badge.AnimationBounce})
	if m.badgeCount != "4" || !m.badgeAnims[badge.AnimationBounce] {
		t.Fatalf("unexpected badge state %q %v", m.badgeCount, m.badgeAnims)
	}
	m.Update(badgeFrameMsg{remove: badge.AnimationBounce})
	if len(m.badgeAnims) != 0 {
		t.Fatalf("expected animation removed, got %v", m.badgeAnims)
	}
}

func TestTabTogglesPanel(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 20)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, rec)
	if !m.panelOpen() {
		t.Fatal("expected panel open")
	}
	if got := len(m.view.Entries()); got != 3 {
		t.Fatalf("entries: got %d want 3", got)
	}
	if m.viewport.Width != 120-hiddenPanelWidth {
		t.Fatalf("viewport width: got %d", m.viewport.Width)
	}
	if !strings.Contains(m.View(), "Boundary Messages") {
		t.Fatal("panel should render the boundary section")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.panelOpen() {
		t.Fatal("esc should close the panel")
	}
	if m.viewport.Width != 120 {
		t.Fatalf("viewport width after close: got %d", m.viewport.Width)
	}
}

func TestEnterNavigatesToRenderedMessage(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 20)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, rec)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.toast == nil || m.toast.Level != panel.LevelSuccess {
		t.Fatalf("expected success toast, got %+v", m.toast)
	}
	if m.toast.Text != "Navigated to message #1" {
		t.Fatalf("toast text: got %q", m.toast.Text)
	}
	if m.highlightID != 1 {
		t.Fatalf("highlight: got %d", m.highlightID)
	}

	m.Update(highlightExpiredMsg{seq: m.highlightSeq})
	if m.highlightID != -1 {
		t.Fatal("highlight should expire")
	}
}

func TestRangeEndKey(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 20)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, rec)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if m.highlightID != 2 {
		t.Fatalf("expected range end #2 highlighted, got %d", m.highlightID)
	}
}

func TestNavigateToUnloadedMessage(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 2)
	if m.renderFrom != 4 {
		t.Fatalf("renderFrom: got %d", m.renderFrom)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, rec)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.toast == nil || m.toast.Level != panel.LevelInfo {
		t.Fatalf("expected info toast, got %+v", m.toast)
	}
	if !strings.Contains(m.toast.Text, "#1 not loaded") {
		t.Fatalf("toast text: got %q", m.toast.Text)
	}
	if m.viewport.YOffset != 0 {
		t.Fatalf("expected scroll to top, got offset %d", m.viewport.YOffset)
	}
	if m.highlightID != -1 {
		t.Fatal("unloaded message should not be highlighted")
	}
}

func TestLoadOlderMessages(t *testing.T) {
	m, _ := newTestModel(t, sampleTranscript(), 2)
	m.loadOlderMessages()
	if m.renderFrom != 2 {
		t.Fatalf("renderFrom: got %d want 2", m.renderFrom)
	}
	m.loadOlderMessages()
	m.loadOlderMessages()
	if m.renderFrom != 0 || m.hasMore() {
		t.Fatalf("expected everything loaded, renderFrom %d", m.renderFrom)
	}
	if _, ok := m.lineOffsets[0]; !ok {
		t.Fatal("first message should be rendered")
	}
}

func TestToastExpires(t *testing.T) {
	m, _ := newTestModel(t, nil, 20)
	m.Notify(panel.Notification{Level: panel.LevelInfo, Text: "hi"})
	first := m.toastSeq
	m.Notify(panel.Notification{Level: panel.LevelInfo, Text: "again"})

	m.Update(toastExpiredMsg{seq: first})
	if m.toast == nil {
		t.Fatal("stale expiry should not clear a newer toast")
	}
	m.Update(toastExpiredMsg{seq: m.toastSeq})
	if m.toast != nil {
		t.Fatal("expected toast cleared")
	}
}

func TestClickOutsideClosesPanel(t *testing.T) {
	m, rec := newTestModel(t, sampleTranscript(), 20)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, rec)

	m.handleMouseClick(tea.MouseMsg{X: 1, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.panelOpen() {
		t.Fatal("click outside should close the panel")
	}
}

func TestAlignStatusLine(t *testing.T) {
	got := alignStatusLine("left", "right", 12)
	if got != "left   right" {
		t.Fatalf("got %q", got)
	}
	if got := alignStatusLine("left", "right", 5); got != "left" {
		t.Fatalf("narrow: got %q", got)
	}
}

func TestContrastTextColor(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{"231", "16"},
		{"16", "231"},
		{"240", "231"},
		{"not-a-code", "231"},
	}
	for _, tt := range tests {
		if got := contrastTextColor(lipgloss.Color(tt.bg)); string(got) != tt.want {
			t.Errorf("contrastTextColor(%s) = %s, want %s", tt.bg, got, tt.want)
		}
	}
}
