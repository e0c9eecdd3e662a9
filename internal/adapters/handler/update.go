package handler

import (
	"context"
	"fmt"
	"time"

	"bitbot/internal/core/domain"
	"bitbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// UpdateHandler routes gateway updates: plain messages go through the
// trigger-based chat path, inline queries through the single-turn inline
// path. Everything else is ignored.
type UpdateHandler struct {
	chat    port.ChatResponder
	inline  port.InlineResponder
	botID   int64
	timeout time.Duration
}

func NewUpdateHandler(chat port.ChatResponder, inline port.InlineResponder, botID int64,
	timeout time.Duration) *UpdateHandler {
	return &UpdateHandler{
		chat:    chat,
		inline:  inline,
		botID:   botID,
		timeout: timeout,
	}
}

func (h *UpdateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.InlineQuery != nil:
		h.handleInlineQuery(ctx, b, update.InlineQuery)
	case update.Message != nil:
		h.handleMessage(ctx, b, update.Message)
	}
}

func (h *UpdateHandler) handleMessage(ctx context.Context, b *bot.Bot, message *models.Message) {
	event := h.buildEvent(ctx, b, message)

	go func() {
		if err := h.chat.Respond(context.Background(), h.timeout, event); err != nil {
			log.Err(err).Int64("chatId", event.ChatID).Msg("failed to respond to message")
		}
	}()
}

func (h *UpdateHandler) buildEvent(ctx context.Context, b *bot.Bot, message *models.Message) *domain.ChatEvent {
	event := &domain.ChatEvent{
		ID:     message.ID,
		ChatID: message.Chat.ID,
		Text:   message.Text,
	}

	if message.From != nil {
		event.Sender = getUserNameOrFirstName(message.From)
	}

	reply := message.ReplyToMessage
	if reply == nil {
		return event
	}

	event.QuotedMessageID = reply.ID

	event.QuotedText = reply.Text
	if event.QuotedText == "" {
		event.QuotedText = reply.Caption
	}

	if reply.From != nil && reply.From.ID == h.botID {
		event.IsReplyToBot = true
	}

	if len(reply.Photo) > 0 {
		event.ImageURL = photoURL(ctx, b, reply.Photo)
	}

	return event
}

// photoURL resolves the largest size of a photo to a download URL. Failures
// degrade to no image rather than blocking the message.
func photoURL(ctx context.Context, b *bot.Bot, photos []models.PhotoSize) string {
	largest := photos[len(photos)-1]

	f, err := b.GetFile(ctx, &bot.GetFileParams{FileID: largest.FileID})
	if err != nil {
		log.Error().Err(err).Msg("error getting file from telegram api")
		return ""
	}

	return b.FileDownloadLink(f)
}

func (h *UpdateHandler) handleInlineQuery(ctx context.Context, b *bot.Bot, query *models.InlineQuery) {
	cards, err := h.inline.Respond(ctx, h.timeout, query.Query)
	if err != nil || len(cards) == 0 {
		// any inline failure means no response at all
		return
	}

	results := make([]models.InlineQueryResult, 0, len(cards))
	for _, card := range cards {
		results = append(results, &models.InlineQueryResultArticle{
			ID:          card.ID,
			Title:       card.Title,
			Description: card.Description,
			InputMessageContent: &models.InputTextMessageContent{
				MessageText:        renderCard(card),
				ParseMode:          models.ParseModeMarkdown,
				LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
			},
		})
	}

	_, err = b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       results,
	})
	if err != nil {
		log.Err(err).Msg("failed to answer inline query")
	}
}

// renderCard escapes the model output before applying any markup, so the
// card body can never break the client's MarkdownV2 parser.
func renderCard(card domain.InlineCard) string {
	if card.Question == "" {
		return bot.EscapeMarkdown(card.Answer)
	}

	return fmt.Sprintf("*❓ %s*\n\n🤖 %s",
		bot.EscapeMarkdown(card.Question), bot.EscapeMarkdown(card.Answer))
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
