package nlu

import (
	"encoding/json"

	"warungchat/internal/menu"
)

// Response is one bot utterance from the REST webhook.
type Response struct {
	RecipientID string          `json:"recipient_id,omitempty"`
	Text        string          `json:"text"`
	Buttons     []Button        `json:"buttons"`
	Image       *string         `json:"image"`
	Custom      json.RawMessage `json:"custom"`
}

type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Normalize fills absent fields with the defaults the front-end expects:
// empty text, empty buttons, null image and custom.
func (r Response) Normalize() Response {
	if r.Buttons == nil {
		r.Buttons = []Button{}
	}
	if len(r.Custom) == 0 || string(r.Custom) == "null" {
		r.Custom = nil
	}
	r.RecipientID = ""
	return r
}

type Tracker struct {
	SenderID string `json:"sender_id"`
	Slots    Slots  `json:"slots"`
}

type Slots struct {
	RecommendedMenus []menu.Record `json:"recommended_menus"`
}

type Status struct {
	Version string `json:"version"`
}

type webhookRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
