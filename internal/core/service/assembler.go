package service

import (
	"bitbot/internal/core/domain"
)

// DefaultSystemPrompt is the persona instruction prepended to every chat
// completion unless overridden in the config.
const DefaultSystemPrompt = "You are a question answering bot for the Telegram messenger. " +
	"People call you with a message and you answer the question right in the chat. " +
	"The answer must be concise and to the point and contain only the facts requested. " +
	"Don't address the user, don't ask further questions, don't repeat the words from the question. " +
	"It's ok to start the answer with \"because\" or just list the requested facts with no additional words. " +
	"Use the search tool only when the question requires current information beyond your own knowledge."

const (
	noteReplyToBot  = "The user answered to your message."
	noteQueryQuoted = "The user asked you a question about another message."
	noteQuery       = "The user asked you a question."
	noteQuotedOnly  = "The user wants you to comment on another message. It may contain an instruction " +
		"to follow, a question to answer, a topic to explain or perhaps a claim to verify."
)

type ContextAssembler struct {
	systemPrompt string
}

func NewContextAssembler(systemPrompt string) *ContextAssembler {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	return &ContextAssembler{systemPrompt: systemPrompt}
}

// Assemble builds the completion context for a trigger. The branches are
// mutually exclusive; the first one matching wins. An image reference is
// attached to the last user item, or dropped if there is none.
func (a *ContextAssembler) Assemble(trigger domain.Trigger) (domain.Context, error) {
	c := domain.Context{Instructions: a.systemPrompt}

	switch {
	case trigger.Kind == domain.TriggerReplyToBot:
		c.Instructions += "\n\n" + noteReplyToBot
		c.Items = []domain.ContextItem{
			{Role: domain.Assistant, Text: trigger.Quoted},
			{Role: domain.User, Text: trigger.Query},
		}
	case trigger.Query != "" && trigger.Quoted != "":
		c.Instructions += "\n\n" + noteQueryQuoted
		c.Items = []domain.ContextItem{
			{Role: domain.User, Text: trigger.Query},
			{Role: domain.User, Text: trigger.Quoted},
		}
	case trigger.Query != "":
		c.Instructions += "\n\n" + noteQuery
		c.Items = []domain.ContextItem{
			{Role: domain.User, Text: trigger.Query},
		}
	case trigger.Quoted != "":
		c.Instructions += "\n\n" + noteQuotedOnly
		c.Items = []domain.ContextItem{
			{Role: domain.User, Text: trigger.Quoted},
		}
	default:
		return domain.Context{}, domain.ErrEmptyContext
	}

	attachImage(&c, trigger.ImageURL)

	return c, nil
}

// AssembleContinuation builds the context for a reply-to-bot turn that
// resumes a stored provider conversation: only the new user turn is sent,
// the prior exchange lives provider-side.
func (a *ContextAssembler) AssembleContinuation(trigger domain.Trigger) domain.Context {
	c := domain.Context{
		Instructions: a.systemPrompt + "\n\n" + noteReplyToBot,
		Items: []domain.ContextItem{
			{Role: domain.User, Text: trigger.Query},
		},
	}

	attachImage(&c, trigger.ImageURL)

	return c
}

func attachImage(c *domain.Context, imageURL string) {
	if imageURL == "" {
		return
	}

	for i := len(c.Items) - 1; i >= 0; i-- {
		if c.Items[i].Role == domain.User {
			c.Items[i].ImageURL = imageURL
			return
		}
	}
}
