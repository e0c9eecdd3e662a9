package domain

type Role string

const (
	User      Role = "user"
	Assistant Role = "assistant"
)

// ChatEvent is one inbound message as seen by the core, already detached
// from the transport's update types.
type ChatEvent struct {
	ID              int
	ChatID          int64
	Sender          string
	Text            string
	QuotedMessageID int
	QuotedText      string
	ImageURL        string
	IsReplyToBot    bool
}

type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerDirectQuestion
	TriggerReplyToBot
	TriggerNameOnly
)

// Trigger is the classified intent of a ChatEvent. Kind decides whether the
// bot responds at all; the remaining fields carry the resolved query, the
// quoted message text and an optional image reference.
type Trigger struct {
	Kind     TriggerKind
	Query    string
	Quoted   string
	ImageURL string
}

// ContextItem is one conversational turn sent to the completion provider.
// ImageURL, when set, turns the item into a text+image pair.
type ContextItem struct {
	Role     Role
	Text     string
	ImageURL string
}

// Context is the full payload for one completion: a joined instruction
// string plus the ordered conversational items. It contains at most one
// assistant item (the bot's immediately preceding turn).
type Context struct {
	Instructions string
	Items        []ContextItem
}

// ToolCall is a pending provider-issued tool invocation. ID correlates the
// eventual result with the call.
type ToolCall struct {
	ID    string
	Name  string
	Query string
}

// CompletionRequest is one call to the completion provider. PreviousID, when
// set, continues the provider-side conversation identified by it instead of
// starting fresh. EnableSearch advertises the search tool.
type CompletionRequest struct {
	Instructions string
	Items        []ContextItem
	PreviousID   string
	EnableSearch bool
}

// Completion is the provider's answer to one request. ToolCall is non-nil
// while the provider is waiting for a tool result; ID is the continuation
// handle for follow-up calls.
type Completion struct {
	ID       string
	Text     string
	ToolCall *ToolCall
}

type SearchResult struct {
	Title   string
	URL     string
	Excerpt string
}

// InlineCard is one of the answer presentations offered for an inline query.
// Question is empty for the answer-only card.
type InlineCard struct {
	ID          string
	Title       string
	Description string
	Question    string
	Answer      string
}

type Action string

const (
	Typing Action = "typing"
)
