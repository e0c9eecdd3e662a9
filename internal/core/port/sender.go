package port

import (
	"context"

	"bitbot/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a reply to a specified message with the given text
	// and returns the sent message ID.
	SendMessageReply(ctx context.Context, chatID int64, messageID int, text string) (int, error)
	// SendChatAction sends a chat action (e.g., typing) to indicate activity in
	// a given chat until the context is done.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
}
