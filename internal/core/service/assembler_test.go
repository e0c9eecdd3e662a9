package service

import (
	"testing"

	"bitbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAssemblerAssemble(t *testing.T) {
	tests := []struct {
		name      string
		trigger   domain.Trigger
		wantNote  string
		wantItems []domain.ContextItem
		wantErr   error
	}{
		{
			name: "reply to bot yields assistant then user item",
			trigger: domain.Trigger{
				Kind:   domain.TriggerReplyToBot,
				Query:  "are you sure?",
				Quoted: "the answer is 42",
			},
			wantNote: noteReplyToBot,
			wantItems: []domain.ContextItem{
				{Role: domain.Assistant, Text: "the answer is 42"},
				{Role: domain.User, Text: "are you sure?"},
			},
		},
		{
			name: "query and quoted text",
			trigger: domain.Trigger{
				Kind:   domain.TriggerDirectQuestion,
				Query:  "is this true?",
				Quoted: "the moon is cheese",
			},
			wantNote: noteQueryQuoted,
			wantItems: []domain.ContextItem{
				{Role: domain.User, Text: "is this true?"},
				{Role: domain.User, Text: "the moon is cheese"},
			},
		},
		{
			name: "query only",
			trigger: domain.Trigger{
				Kind:  domain.TriggerDirectQuestion,
				Query: "what is the time?",
			},
			wantNote: noteQuery,
			wantItems: []domain.ContextItem{
				{Role: domain.User, Text: "what is the time?"},
			},
		},
		{
			name: "quoted only",
			trigger: domain.Trigger{
				Kind:   domain.TriggerNameOnly,
				Quoted: "some claim",
			},
			wantNote: noteQuotedOnly,
			wantItems: []domain.ContextItem{
				{Role: domain.User, Text: "some claim"},
			},
		},
		{
			name: "image attaches to the last user item",
			trigger: domain.Trigger{
				Kind:     domain.TriggerDirectQuestion,
				Query:    "is this true?",
				Quoted:   "the moon is cheese",
				ImageURL: "https://files.example/1.jpg",
			},
			wantNote: noteQueryQuoted,
			wantItems: []domain.ContextItem{
				{Role: domain.User, Text: "is this true?"},
				{Role: domain.User, Text: "the moon is cheese", ImageURL: "https://files.example/1.jpg"},
			},
		},
		{
			name: "synthesized image question with image",
			trigger: domain.Trigger{
				Kind:     domain.TriggerNameOnly,
				Query:    "What is in this image?",
				ImageURL: "https://files.example/2.jpg",
			},
			wantNote: noteQuery,
			wantItems: []domain.ContextItem{
				{Role: domain.User, Text: "What is in this image?", ImageURL: "https://files.example/2.jpg"},
			},
		},
		{
			name:    "nothing to assemble",
			trigger: domain.Trigger{Kind: domain.TriggerDirectQuestion},
			wantErr: domain.ErrEmptyContext,
		},
	}

	assembler := NewContextAssembler("")

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := assembler.Assemble(tc.trigger)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, DefaultSystemPrompt+"\n\n"+tc.wantNote, c.Instructions)
			assert.Equal(t, tc.wantItems, c.Items)
		})
	}
}

func TestContextAssemblerAtMostOneAssistantItem(t *testing.T) {
	assembler := NewContextAssembler("prompt")

	c, err := assembler.Assemble(domain.Trigger{
		Kind:   domain.TriggerReplyToBot,
		Query:  "and now?",
		Quoted: "it was 5pm",
	})
	require.NoError(t, err)

	assistants := 0
	for _, item := range c.Items {
		if item.Role == domain.Assistant {
			assistants++
		}
	}

	assert.Equal(t, 1, assistants)
	assert.Equal(t, domain.Assistant, c.Items[0].Role)
	assert.Equal(t, domain.User, c.Items[1].Role)
}

func TestContextAssemblerContinuation(t *testing.T) {
	assembler := NewContextAssembler("prompt")

	c := assembler.AssembleContinuation(domain.Trigger{
		Kind:     domain.TriggerReplyToBot,
		Query:    "and what about now?",
		Quoted:   "it was 5pm",
		ImageURL: "https://files.example/1.jpg",
	})

	assert.Equal(t, "prompt\n\n"+noteReplyToBot, c.Instructions)
	assert.Equal(t, []domain.ContextItem{
		{Role: domain.User, Text: "and what about now?", ImageURL: "https://files.example/1.jpg"},
	}, c.Items)
}

func TestContextAssemblerCustomPrompt(t *testing.T) {
	assembler := NewContextAssembler("you are a pirate")

	c, err := assembler.Assemble(domain.Trigger{Kind: domain.TriggerDirectQuestion, Query: "ahoy?"})
	require.NoError(t, err)

	assert.Equal(t, "you are a pirate\n\n"+noteQuery, c.Instructions)
}
