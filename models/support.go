package models

import "time"

// SupportThread is a conversation opened with marketplace support.
type SupportThread struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportMessage is a single message inside a support thread. The ID is
// generated client-side so that a resent message is deduplicated by the
// server rather than delivered twice.
type SupportMessage struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id"`
	Author   string    `json:"author"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}
