package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/client/client"
	"github.com/dmitrijs2005/blindcalc/internal/client/models"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/cryptox"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

// SearchService sends and finds records of a conversation. Members share a
// passphrase; payload key and trapdoor secret are derived from it per
// conversation and never sent anywhere.
type SearchService interface {
	Send(ctx context.Context, conversationID string, passphrase []byte, text string) (string, error)
	Search(ctx context.Context, conversationID string, passphrase []byte, keyword string) ([]*models.Message, error)
	Delete(ctx context.Context, recordID string) error
}

type searchService struct {
	client    client.Client
	tokenizer *trapdoor.Tokenizer
	logger    logging.Logger
}

// NewSearchService constructs a SearchService. The tokenizer has to match
// the one the other members index with.
func NewSearchService(client client.Client, tokenizer *trapdoor.Tokenizer, logger logging.Logger) SearchService {
	return &searchService{client: client, tokenizer: tokenizer, logger: logger.With("module", "search")}
}

// Send seals text, indexes its keywords and stores the record. It returns
// the id the evaluator assigned.
func (s *searchService) Send(ctx context.Context, conversationID string, passphrase []byte, text string) (string, error) {
	if conversationID == "" {
		return "", fmt.Errorf("%w: conversation id is required", common.ErrRange)
	}

	keys, err := cryptox.DeriveConversationKeys(passphrase, conversationID)
	if err != nil {
		return "", err
	}
	defer keys.Wipe()

	payload, err := cryptox.SealPayload([]byte(text), keys.PayloadKey)
	if err != nil {
		return "", fmt.Errorf("seal payload: %w", err)
	}

	tokens, err := trapdoor.DeriveTokens(s.tokenizer.Tokenize(text), keys.TrapdoorSecret)
	if err != nil {
		return "", err
	}

	id, err := s.client.StoreRecord(ctx, conversationID, payload, tokens)
	if err != nil {
		return "", err
	}

	s.logger.Debug(ctx, "Record stored", "record_id", id, "tokens", len(tokens))
	return id, nil
}

// Search takes a single keyword. A keyword the tokenizer would never index
// (stop word, too short) matches nothing without contacting the evaluator.
// Records that do not open under the derived key are skipped and logged.
func (s *searchService) Search(ctx context.Context, conversationID string, passphrase []byte, keyword string) ([]*models.Message, error) {
	words := s.tokenizer.Tokenize(keyword)
	switch len(words) {
	case 0:
		return []*models.Message{}, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: search takes one keyword, got %d", common.ErrRange, len(words))
	}

	keys, err := cryptox.DeriveConversationKeys(passphrase, conversationID)
	if err != nil {
		return nil, err
	}
	defer keys.Wipe()

	token, err := trapdoor.DeriveToken(words[0], keys.TrapdoorSecret)
	if err != nil {
		return nil, err
	}

	records, err := s.client.Search(ctx, conversationID, token)
	if err != nil {
		return nil, err
	}

	messages := make([]*models.Message, 0, len(records))
	for _, r := range records {
		text, err := cryptox.OpenPayload(r.Payload, keys.PayloadKey)
		if err != nil {
			s.logger.Warn(ctx, "Record does not open", "record_id", r.ID, "error", err.Error())
			continue
		}
		messages = append(messages, &models.Message{
			ID:             r.ID,
			ConversationID: r.ConversationID,
			SenderID:       r.SenderID,
			Text:           string(text),
			CreatedAt:      r.CreatedAt,
		})
	}
	return messages, nil
}

func (s *searchService) Delete(ctx context.Context, recordID string) error {
	if recordID == "" {
		return fmt.Errorf("%w: record id is required", common.ErrRange)
	}
	return s.client.DeleteRecord(ctx, recordID)
}
