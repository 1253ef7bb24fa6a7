package storefront

import (
	"time"

	"warungchat/internal/format"
)

type Author int

const (
	Bot Author = iota
	User
)

func (a Author) String() string {
	if a == User {
		return "user"
	}
	return "bot"
}

// Message is one transcript entry. Text keeps the raw markup so every
// presentation can render it its own way.
type Message struct {
	Author Author
	Text   string
	At     time.Time
}

// HTML is the message rendered for a browser.
func (m Message) HTML() string {
	return format.Message(m.Text)
}

type EventKind int

const (
	TranscriptChanged EventKind = iota
	MenusChanged
	CartChanged
	CheckoutChanged
	LoadingChanged
	ConnectionChanged
	Notice
	Alert
)

// Event tells the presentation layer what to re-render.
type Event struct {
	Kind EventKind
	Text string
}
