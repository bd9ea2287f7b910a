package types

import "context"

// Message is one entry of a chat transcript snapshot.
type Message struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	IsUser    bool   `json:"is_user"`
	IsHidden  bool   `json:"is_system"`
	ExtraType string `json:"extra_type,omitempty"`
	Text      string `json:"mes"`
	SendDate  string `json:"send_date,omitempty"`
}

// Range is an inclusive run of message indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Single reports whether the range covers exactly one message.
func (r Range) Single() bool {
	return r.Start == r.End
}

// Len returns the number of messages in the range.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

// HiddenData is the result of one classification pass over a transcript.
type HiddenData struct {
	HiddenMessages []int `json:"hiddenMessages"`
	Boundaries     []int `json:"boundaries"`
	TotalCount     int   `json:"totalCount"`
}

// MessageSource provides read-only transcript snapshots.
type MessageSource interface {
	Messages(ctx context.Context) ([]Message, error)
}

// MessageSourceFunc adapts a function to MessageSource.
type MessageSourceFunc func(ctx context.Context) ([]Message, error)

func (f MessageSourceFunc) Messages(ctx context.Context) ([]Message, error) {
	return f(ctx)
}
