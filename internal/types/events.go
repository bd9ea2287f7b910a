package types

// EventType names a host lifecycle or content-change notification.
type EventType string

const (
	EventChatChanged     EventType = "chat_changed"
	EventMessageReceived EventType = "message_received"
	EventMessageDeleted  EventType = "message_deleted"
	EventMessageEdited   EventType = "message_edited"
	EventMessageUpdated  EventType = "message_updated"
	EventMessageSwiped   EventType = "message_swiped"
	EventChatUpdated     EventType = "chat_updated"
	EventAppReady        EventType = "app_ready"
)

// RefreshEvents lists every event that triggers a full recompute.
var RefreshEvents = []EventType{
	EventChatChanged,
	EventMessageReceived,
	EventMessageDeleted,
	EventMessageEdited,
	EventMessageUpdated,
	EventMessageSwiped,
	EventChatUpdated,
	EventAppReady,
}

// ParseEventType returns the event type named by s.
func ParseEventType(s string) (EventType, bool) {
	for _, event := range RefreshEvents {
		if string(event) == s {
			return event, true
		}
	}
	return "", false
}
