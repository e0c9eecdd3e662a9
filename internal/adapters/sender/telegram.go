package sender

import (
	"context"
	"time"

	"bitbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type TelegramSender struct {
	bot TelegramBot
}

func NewTelegramSender(bot TelegramBot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// SendMessageReply sends the text with Markdown formatting and falls back to
// plain text when Telegram rejects the entity parse, so model output with
// unbalanced markup degrades instead of silencing the reply.
func (s *TelegramSender) SendMessageReply(ctx context.Context, chatID int64, messageID int,
	text string) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
		ReplyParameters: &models.ReplyParameters{
			MessageID: messageID,
			ChatID:    chatID,
		},
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	}

	m, err := s.bot.SendMessage(ctx, params)
	if err != nil {
		log.Debug().Err(err).Int64("chatId", chatID).Msg("markdown send failed, retrying as plain text")

		params.ParseMode = ""
		m, err = s.bot.SendMessage(ctx, params)
		if err != nil {
			return 0, err
		}
	}

	return m.ID, nil
}

const chatActionRepeatSeconds = 5

func (s *TelegramSender) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Debug().Int64("chatId", chatID).Msg("starting action routine")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("chatId", chatID).Msg("done, stopping action routine")
			return
		default:
		}

		var chatAction models.ChatAction
		switch action {
		case domain.Typing:
			chatAction = models.ChatActionTyping
		default:
			chatAction = models.ChatActionTyping
		}

		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: chatAction,
		})
		if err != nil {
			log.Err(err).Msg("error sending chat action")
			return
		}

		time.Sleep(chatActionRepeatSeconds * time.Second)
	}
}
