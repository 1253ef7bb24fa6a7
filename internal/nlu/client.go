package nlu

import (
	"context"

	"warungchat/internal/menu"
)

// Client is the dialogue engine the relay talks to.
type Client interface {
	// Send forwards one user message and returns the bot utterances.
	Send(ctx context.Context, sender, message string) ([]Response, error)

	// RecommendedMenus reads the recommended_menus slot of a conversation.
	RecommendedMenus(ctx context.Context, sender string) ([]menu.Record, error)

	// Status reports the engine version when reachable.
	Status(ctx context.Context) (*Status, error)
}
