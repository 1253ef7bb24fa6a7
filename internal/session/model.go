package session

import (
	"time"

	"warungchat/internal/conversation"
	"warungchat/internal/menu"
	"warungchat/internal/nlu"
)

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatReply is the body of POST /chat, on success and on backend failure.
type ChatReply struct {
	SessionID        string         `json:"sessionId"`
	Responses        []nlu.Response `json:"responses"`
	RecommendedMenus []menu.Record  `json:"recommendedMenus"`
	Timestamp        string         `json:"timestamp,omitempty"`
	Error            string         `json:"error,omitempty"`
}

const (
	ServerConnected    = "connected"
	ServerDisconnected = "disconnected"
)

type Status struct {
	WebServer           string  `json:"webServer"`
	RasaServer          string  `json:"rasaServer"`
	RasaVersion         string  `json:"rasaVersion,omitempty"`
	RasaError           string  `json:"rasaError,omitempty"`
	ActiveConversations int     `json:"activeConversations"`
	Uptime              float64 `json:"uptime"`
	Timestamp           string  `json:"timestamp"`
}

// Connected reports whether the NLU backend is reachable.
func (s Status) Connected() bool {
	return s.RasaServer == ServerConnected
}

type History struct {
	SessionID    string              `json:"sessionId"`
	Conversation []conversation.Turn `json:"conversation"`
	MessageCount int                 `json:"messageCount"`
}

// Timestamp formats t the way every response body carries it.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
