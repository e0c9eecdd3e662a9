package service

import (
	"strings"

	"bitbot/internal/core/domain"
)

// callNames lists the names the bot answers to, grouped by language. Order
// matters: language detection for the image question scans the groups in
// this order and picks the first match.
var callNames = []struct {
	lang  string
	names []string
}{
	{"ru", []string{"бот", "бит", "битингс"}},
	{"uk", []string{"бiт", "біт"}},
	{"en", []string{"bot", "bit", "bitings"}},
}

var imageQuestions = map[string]string{
	"ru": "Что изображено на этой картинке?",
	"uk": "Що зображено на цій картинці?",
	"en": "What is in this image?",
}

// Classify decides whether and how the bot should respond to a message.
// Priority: reply to the bot's own message, then a call-name-plus-comma
// prefix, then a message that is exactly a call-name. A call-name inside a
// longer word never triggers.
func Classify(event *domain.ChatEvent) domain.Trigger {
	if event.IsReplyToBot {
		return domain.Trigger{
			Kind:     domain.TriggerReplyToBot,
			Query:    event.Text,
			Quoted:   event.QuotedText,
			ImageURL: event.ImageURL,
		}
	}

	lower := strings.ToLower(event.Text)

	for _, group := range callNames {
		for _, name := range group.names {
			if strings.HasPrefix(lower, name+",") {
				parts := strings.SplitN(event.Text, ",", 2)
				return domain.Trigger{
					Kind:     domain.TriggerDirectQuestion,
					Query:    strings.TrimSpace(parts[1]),
					Quoted:   event.QuotedText,
					ImageURL: event.ImageURL,
				}
			}

			if lower == name {
				var query string
				if event.ImageURL != "" {
					query = imageQuestions[callNameLanguage(lower)]
				}

				return domain.Trigger{
					Kind:     domain.TriggerNameOnly,
					Query:    query,
					Quoted:   event.QuotedText,
					ImageURL: event.ImageURL,
				}
			}
		}
	}

	return domain.Trigger{Kind: domain.TriggerNone}
}

// callNameLanguage returns the language of the first call-name group with a
// case-insensitive substring match in the text, defaulting to English.
func callNameLanguage(lowerText string) string {
	for _, group := range callNames {
		for _, name := range group.names {
			if strings.Contains(lowerText, name) {
				return group.lang
			}
		}
	}

	return "en"
}
