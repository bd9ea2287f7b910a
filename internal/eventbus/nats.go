package eventbus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamavenir/ghostpanel/internal/types"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Bridge forwards host events published on NATS into a local Bus.
// Subjects look like "<prefix>.<event>", e.g. "ghostpanel.chat_changed".
type Bridge struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	prefix string
	bus    *Bus
	log    *zap.Logger
}

// BridgeNATS connects to url and re-emits "<prefix>.>" messages on bus until
// ctx is done or Close is called.
func BridgeNATS(ctx context.Context, url, prefix string, bus *Bus, log *zap.Logger) (*Bridge, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := nats.Connect(url,
		nats.Name("ghostpanel"),
		nats.Timeout(5*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	bridge, err := newBridge(conn, prefix, bus, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	go func() {
		<-ctx.Done()
		bridge.Close()
	}()
	return bridge, nil
}

func newBridge(conn *nats.Conn, prefix string, bus *Bus, log *zap.Logger) (*Bridge, error) {
	b := &Bridge{conn: conn, prefix: prefix, bus: bus, log: log}
	sub, err := conn.Subscribe(prefix+".>", func(msg *nats.Msg) {
		b.forward(msg.Subject)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s.>: %w", prefix, err)
	}
	b.sub = sub
	return b, nil
}

func (b *Bridge) forward(subject string) {
	event, ok := EventFromSubject(b.prefix, subject)
	if !ok {
		b.log.Debug("ignoring unknown host event", zap.String("subject", subject))
		return
	}
	if err := b.bus.Emit(event); err != nil {
		b.log.Debug("dropping host event", zap.String("event", string(event)), zap.Error(err))
	}
}

// Close unsubscribes and closes the NATS connection.
func (b *Bridge) Close() {
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	if b.conn != nil && !b.conn.IsClosed() {
		b.conn.Close()
	}
}

// EventFromSubject maps "<prefix>.<event>" to a known event type.
func EventFromSubject(prefix, subject string) (types.EventType, bool) {
	rest, ok := strings.CutPrefix(subject, prefix+".")
	if !ok || rest == "" {
		return "", false
	}
	if idx := strings.LastIndex(rest, "."); idx >= 0 {
		rest = rest[idx+1:]
	}
	return types.ParseEventType(rest)
}
