package port

import (
	"context"
	"time"

	"bitbot/internal/core/domain"
)

type ChatResponder interface {
	// Respond classifies the event and, when triggered, generates and sends
	// one reply within the given timeout.
	Respond(ctx context.Context, timeout time.Duration, event *domain.ChatEvent) error
}

type InlineResponder interface {
	// Respond answers an inline query with up to two alternative cards. An
	// empty result means no response should be sent.
	Respond(ctx context.Context, timeout time.Duration, query string) ([]domain.InlineCard, error)
}
