package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/server/blobs"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"github.com/google/uuid"
)

// newRecordID is a seam for tests.
var newRecordID = func() string { return uuid.New().String() }

// SearchService stores sealed records with their trapdoor tokens and
// answers exact token queries. Payloads and tokens are opaque here.
type SearchService struct {
	store  RecordStore
	blobs  blobs.Store
	logger logging.Logger
}

// NewSearchService builds the service. A nil blob store keeps payloads
// inline in the record store.
func NewSearchService(store RecordStore, blobStore blobs.Store, logger logging.Logger) *SearchService {
	return &SearchService{store: store, blobs: blobStore, logger: logger.With("module", "search_service")}
}

// StoreRecord saves the payload and indexes it under tokens. The record is
// stored before any token references it.
func (s *SearchService) StoreRecord(ctx context.Context, senderID, conversationID string, payload []byte, tokens []trapdoor.Token) (*models.Record, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", common.ErrRange)
	}

	rec := &models.Record{
		ID:             newRecordID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		CreatedAt:      time.Now().UTC(),
	}

	if s.blobs != nil {
		rec.BlobKey = blobs.NewKey(rec.CreatedAt, rec.ID)
		if err := s.blobs.Put(ctx, rec.BlobKey, payload); err != nil {
			return nil, err
		}
	} else {
		rec.Payload = payload
	}

	if err := s.store.Save(ctx, rec, tokens); err != nil {
		if rec.BlobKey != "" {
			if derr := s.blobs.Delete(ctx, rec.BlobKey); derr != nil {
				s.logger.Warn(ctx, "orphaned blob", "key", rec.BlobKey, "error", derr.Error())
			}
		}
		return nil, err
	}

	s.logger.Debug(ctx, "record stored", "record_id", rec.ID, "tokens", len(tokens))
	return rec, nil
}

// Search returns the conversation's records indexed under token, oldest
// first. No match is an empty result.
func (s *SearchService) Search(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error) {
	recs, err := s.store.FindByToken(ctx, conversationID, token)
	if err != nil {
		return nil, err
	}

	for i, rec := range recs {
		if rec.BlobKey == "" || s.blobs == nil {
			continue
		}
		payload, err := s.blobs.Get(ctx, rec.BlobKey)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		loaded := *rec
		loaded.Payload = payload
		recs[i] = &loaded
	}
	return recs, nil
}

// DeleteRecord removes a record and its index entries. Only the sender may
// delete it; for anyone else the record does not exist.
func (s *SearchService) DeleteRecord(ctx context.Context, callerID, recordID string) error {
	rec, err := s.store.Get(ctx, recordID)
	if err != nil {
		return err
	}
	if rec.SenderID != callerID {
		return common.ErrorNotFound
	}

	if err := s.store.Delete(ctx, recordID); err != nil {
		return err
	}

	if rec.BlobKey != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, rec.BlobKey); err != nil {
			s.logger.Warn(ctx, "orphaned blob", "key", rec.BlobKey, "error", err.Error())
		}
	}
	return nil
}
