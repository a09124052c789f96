// Package models defines client-side data models used by the blindcalc CLI.
package models

import (
	"math/big"
	"time"
)

// Record is a searchable record as returned by the evaluator. Payload is
// still sealed with the conversation's payload key.
type Record struct {
	ID             string
	ConversationID string
	SenderID       string
	Payload        []byte
	CreatedAt      time.Time
}

// Message is a Record whose payload was opened locally.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	CreatedAt      time.Time
}

// Aggregate is the decrypted result of an aggregation session.
type Aggregate struct {
	SessionID string
	Sum       *big.Int
	Count     int64
	// Average is exact; render with FloatString for display.
	Average *big.Rat
}
