package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyContext       = errors.New("no query, quoted text or image to respond to")
	ErrCompletionFailed   = errors.New("completion failed")
	ErrToolCallLimit      = errors.New("tool call limit exceeded")
)
