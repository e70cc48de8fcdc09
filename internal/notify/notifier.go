package notify

import "context"

type Audience string

const (
	AudienceAdmin Audience = "admin"
	AudienceUser  Audience = "user"
)

// Message is one outbound notification. Context carries small key/value
// details for the formatting layer (entry ids, product names, reasons).
type Message struct {
	Audience Audience          `json:"audience"`
	UserID   string            `json:"user_id,omitempty"`
	Event    string            `json:"event"`
	Body     string            `json:"body"`
	Context  map[string]string `json:"context,omitempty"`
}

// Notifier delivers messages to an external channel. Dispatch is
// fire-and-forget relative to the state transition that triggered it: callers
// log failures and never fail the operation on them.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

type noop struct{}

// NewNoop returns a notifier that drops everything (notifications disabled).
func NewNoop() Notifier {
	return noop{}
}

func (noop) Notify(context.Context, Message) error {
	return nil
}
