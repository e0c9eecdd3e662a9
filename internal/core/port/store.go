package port

import "context"

// ConversationStore keeps provider continuation handles keyed by the
// coordinates of the bot's own replies. Both operations degrade silently:
// a missing key, an expired key and an unreachable backend all surface as
// an absent handle, never as an error.
type ConversationStore interface {
	Get(ctx context.Context, chatID int64, messageID int) (string, bool)
	Set(ctx context.Context, chatID int64, messageID int, handle string)
}
