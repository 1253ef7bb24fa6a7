package conversation

import (
	"time"

	"warungchat/internal/menu"
)

// DefaultLimit is how many turns a session keeps before the oldest go.
const DefaultLimit = 50

// Turn is one user message and what the bot answered.
type Turn struct {
	ID        string        `json:"id"`
	User      string        `json:"user"`
	Bot       []string      `json:"bot"`
	Timestamp time.Time     `json:"timestamp"`
	Menus     []menu.Record `json:"menus"`
}
