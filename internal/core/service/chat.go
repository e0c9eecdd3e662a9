package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bitbot/internal/core/domain"
	"bitbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// maxToolCalls bounds the provider's tool-call loop so a provider that never
// stops requesting searches cannot ping-pong forever.
const maxToolCalls = 5

const queryLogLimit = 80

type ChatResponder struct {
	assembler *ContextAssembler
	completer port.Completer
	searcher  port.Searcher
	store     port.ConversationStore
	sender    port.TextSender
}

func NewChatResponder(assembler *ContextAssembler, completer port.Completer, searcher port.Searcher,
	store port.ConversationStore, sender port.TextSender) *ChatResponder {
	return &ChatResponder{
		assembler: assembler,
		completer: completer,
		searcher:  searcher,
		store:     store,
		sender:    sender,
	}
}

// Respond classifies the event and, when triggered, runs the completion and
// sends a single reply. A failed completion is logged and absorbed: the bot
// never sends a partial or apologetic message into the chat.
func (r *ChatResponder) Respond(ctx context.Context, timeout time.Duration, event *domain.ChatEvent) error {
	trigger := Classify(event)
	if trigger.Kind == domain.TriggerNone {
		return nil
	}

	if trigger.Query == "" && trigger.Quoted == "" && trigger.ImageURL == "" {
		return nil
	}

	l := log.With().
		Int("messageId", event.ID).
		Int64("chatId", event.ChatID).
		Str("sender", event.Sender).
		Int("trigger", int(trigger.Kind)).
		Logger()

	l.Info().Msg("handling message")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go r.sender.SendChatAction(ctx, event.ChatID, domain.Typing)

	answer, handle, err := r.generate(ctx, trigger, event)
	if err != nil {
		l.Error().Err(err).
			Str("query", truncate(trigger.Query, queryLogLimit)).
			Msg("failed to generate reply")
		return fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	replyTo := event.ID
	if trigger.Query == "" && event.QuotedMessageID != 0 {
		replyTo = event.QuotedMessageID
	}

	sentID, err := r.sender.SendMessageReply(ctx, event.ChatID, replyTo, answer)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return err
	}

	if handle != "" {
		r.store.Set(ctx, event.ChatID, sentID, handle)
	}

	l.Debug().Msg("reply sent")

	return nil
}

// generate produces the answer text and the continuation handle of the final
// provider response. A reply to one of the bot's own messages resumes the
// stored provider-side conversation when a handle is still cached; otherwise
// the full context is assembled from scratch.
func (r *ChatResponder) generate(ctx context.Context, trigger domain.Trigger,
	event *domain.ChatEvent) (string, string, error) {
	var previousID string
	convo := domain.Context{}

	if trigger.Kind == domain.TriggerReplyToBot {
		if handle, ok := r.store.Get(ctx, event.ChatID, event.QuotedMessageID); ok {
			previousID = handle
			convo = r.assembler.AssembleContinuation(trigger)
		}
	}

	if previousID == "" {
		var err error
		convo, err = r.assembler.Assemble(trigger)
		if err != nil {
			return "", "", err
		}
	}

	completion, err := r.completer.Complete(ctx, domain.CompletionRequest{
		Instructions: convo.Instructions,
		Items:        convo.Items,
		PreviousID:   previousID,
		EnableSearch: true,
	})
	if err != nil {
		return "", "", fmt.Errorf("completion request failed: %w", err)
	}

	for calls := 0; completion.ToolCall != nil; calls++ {
		if calls >= maxToolCalls {
			if completion.Text != "" {
				log.Warn().Int("calls", calls).Msg("tool call limit reached, using last response text")
				return completion.Text, completion.ID, nil
			}
			return "", "", domain.ErrToolCallLimit
		}

		call := *completion.ToolCall

		log.Debug().Str("query", truncate(call.Query, queryLogLimit)).Msg("running search tool call")

		results, err := r.searcher.Search(ctx, call.Query)
		if err != nil {
			return "", "", fmt.Errorf("search request failed: %w", err)
		}

		completion, err = r.completer.SubmitToolResult(ctx, convo.Instructions, completion.ID, call,
			formatSearchResults(results))
		if err != nil {
			return "", "", fmt.Errorf("tool result submission failed: %w", err)
		}
	}

	return completion.Text, completion.ID, nil
}

func formatSearchResults(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "No results."
	}

	var sb strings.Builder
	for i, result := range results {
		fmt.Fprintf(&sb, "%d. %s\n%s\n%s\n\n", i+1, result.Title, result.URL, result.Excerpt)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + "…"
}
