// Package models defines server-side data models persisted in the database.
package models

import "time"

// Record is one opaque message stored for a conversation. The evaluator
// never interprets Payload.
type Record struct {
	// ID is a server-assigned uuid.
	ID             string
	ConversationID string
	// SenderID is the caller id taken from the access token.
	SenderID string
	// Payload holds the sealed body when it is kept inline.
	Payload []byte
	// BlobKey is the object-storage key when the body lives in S3.
	BlobKey   string
	CreatedAt time.Time
}
