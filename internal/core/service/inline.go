package service

import (
	"context"
	"strings"
	"time"

	"bitbot/internal/core/domain"
	"bitbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// inlineSystemPrompt differs from the chat persona: inline answers are
// produced in a single turn with no tool loop.
const inlineSystemPrompt = "You are a question answering bot for the Telegram messenger. " +
	"People call you with an inline query in their message and you answer the question right in the chat. " +
	"The answer must be concise and to the point and contain only the facts requested. " +
	"Don't address the user, don't ask further questions, don't repeat the words from the question. " +
	"It's ok to start the answer with \"because\" or just list the requested facts with no additional words."

type InlineResponder struct {
	completer port.Completer
}

func NewInlineResponder(completer port.Completer) *InlineResponder {
	return &InlineResponder{completer: completer}
}

// Respond answers an inline query ending in a question mark with two cards:
// one embedding the question and the answer, one with the answer alone. Any
// failure yields no cards, which the gateway turns into no response at all.
func (r *InlineResponder) Respond(ctx context.Context, timeout time.Duration,
	query string) ([]domain.InlineCard, error) {
	if !strings.HasSuffix(query, "?") {
		return nil, nil
	}

	log.Debug().Str("query", truncate(query, queryLogLimit)).Msg("handling inline query")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completion, err := r.completer.Complete(ctx, domain.CompletionRequest{
		Instructions: inlineSystemPrompt,
		Items: []domain.ContextItem{
			{Role: domain.User, Text: strings.TrimSuffix(query, "?")},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("inline completion failed")
		return nil, err
	}

	if completion.Text == "" {
		return nil, nil
	}

	conversationID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	answerID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	return []domain.InlineCard{
		{
			ID:          conversationID.String(),
			Title:       "Conversation",
			Description: query + "\n\n" + completion.Text,
			Question:    query,
			Answer:      completion.Text,
		},
		{
			ID:          answerID.String(),
			Title:       "Answer",
			Description: completion.Text,
			Answer:      completion.Text,
		},
	}, nil
}
