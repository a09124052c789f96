// Package api describes the evaluator's gRPC surface: request and response
// messages, the service descriptor, the client stub and the JSON codec both
// sides speak.
package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetDomainRequest struct{}

type GetDomainResponse struct {
	Labels []string `json:"labels"`
}

// PublicKey is the wire form of a Paillier public key: decimal n and g.
type PublicKey struct {
	N string `json:"n"`
	G string `json:"g"`
}

type SubmitRequest struct {
	SessionID  string     `json:"session_id"`
	PublicKey  *PublicKey `json:"public_key"`
	Ciphertext string     `json:"ciphertext"`
}

type SubmitResponse struct {
	Count int64 `json:"count"`
}

type FinalizeRequest struct {
	SessionID string `json:"session_id"`
}

type FinalizeResponse struct {
	PublicKey *PublicKey `json:"public_key"`
	Sum       string     `json:"sum"`
	Count     int64      `json:"count"`
}

type MembershipRequest struct {
	PublicKey *PublicKey `json:"public_key"`
	Query     []string   `json:"query"`
}

type MembershipResponse struct {
	Result string `json:"result"`
}

// StoreRecordRequest carries an already sealed payload and the trapdoor
// tokens computed by the sender. Tokens are base64url strings.
type StoreRecordRequest struct {
	ConversationID string   `json:"conversation_id"`
	Payload        []byte   `json:"payload"`
	Tokens         []string `json:"tokens"`
}

type StoreRecordResponse struct {
	RecordID string `json:"record_id"`
}

type SearchRequest struct {
	ConversationID string `json:"conversation_id"`
	Token          string `json:"token"`
}

type Record struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Payload        []byte    `json:"payload"`
	CreatedAt      time.Time `json:"created_at"`
}

type SearchResponse struct {
	Records []*Record `json:"records"`
}

type DeleteRecordRequest struct {
	RecordID string `json:"record_id"`
}

type DeleteRecordResponse struct{}
