package grpc

import (
	"context"

	"github.com/dmitrijs2005/blindcalc/internal/api"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) GetDomain(ctx context.Context, req *api.GetDomainRequest) (*api.GetDomainResponse, error) {

	return &api.GetDomainResponse{Labels: s.membership.Domain()}, nil

}

func (s *GRPCServer) Submit(ctx context.Context, req *api.SubmitRequest) (*api.SubmitResponse, error) {

	pk, err := req.PublicKey.Decode()
	if err != nil {
		return nil, s.toStatus(ctx, "Submit", err)
	}
	ct, err := paillier.ParseCiphertext(req.Ciphertext)
	if err != nil {
		return nil, s.toStatus(ctx, "Submit", err)
	}

	count, err := s.aggregation.Submit(ctx, req.SessionID, pk, ct)
	if err != nil {
		return nil, s.toStatus(ctx, "Submit", err)
	}

	s.logger.Info(ctx, "Submission accepted", "session_id", req.SessionID, "count", count, "ciphertext_bits", ct.BitLen())
	return &api.SubmitResponse{Count: count}, nil

}

func (s *GRPCServer) Finalize(ctx context.Context, req *api.FinalizeRequest) (*api.FinalizeResponse, error) {

	snap, err := s.aggregation.Finalize(ctx, req.SessionID)
	if err != nil {
		return nil, s.toStatus(ctx, "Finalize", err)
	}

	s.logger.Info(ctx, "Session finalized", "session_id", req.SessionID, "count", snap.Count)
	return &api.FinalizeResponse{
		PublicKey: api.EncodePublicKey(snap.PublicKey),
		Sum:       snap.Sum.String(),
		Count:     snap.Count,
	}, nil

}

func (s *GRPCServer) Membership(ctx context.Context, req *api.MembershipRequest) (*api.MembershipResponse, error) {

	pk, err := req.PublicKey.Decode()
	if err != nil {
		return nil, s.toStatus(ctx, "Membership", err)
	}
	query, err := api.DecodeCiphertexts(req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, "Membership", err)
	}

	result, err := s.membership.Evaluate(ctx, pk, query)
	if err != nil {
		return nil, s.toStatus(ctx, "Membership", err)
	}

	s.logger.Info(ctx, "Membership evaluated", "query_length", len(query))
	return &api.MembershipResponse{Result: result.String()}, nil

}

func (s *GRPCServer) StoreRecord(ctx context.Context, req *api.StoreRecordRequest) (*api.StoreRecordResponse, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tokens, err := api.DecodeTokens(req.Tokens)
	if err != nil {
		return nil, s.toStatus(ctx, "StoreRecord", err)
	}

	rec, err := s.search.StoreRecord(ctx, userID, req.ConversationID, req.Payload, tokens)
	if err != nil {
		return nil, s.toStatus(ctx, "StoreRecord", err)
	}

	s.logger.Info(ctx, "Record stored", "record_id", rec.ID, "tokens", len(tokens))
	return &api.StoreRecordResponse{RecordID: rec.ID}, nil

}

func (s *GRPCServer) Search(ctx context.Context, req *api.SearchRequest) (*api.SearchResponse, error) {

	token, err := trapdoor.ParseToken(req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, "Search", err)
	}

	recs, err := s.search.Search(ctx, req.ConversationID, token)
	if err != nil {
		return nil, s.toStatus(ctx, "Search", err)
	}

	out := make([]*api.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, &api.Record{
			ID:             r.ID,
			ConversationID: r.ConversationID,
			SenderID:       r.SenderID,
			Payload:        r.Payload,
			CreatedAt:      r.CreatedAt,
		})
	}
	return &api.SearchResponse{Records: out}, nil

}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.DeleteRecordRequest) (*api.DeleteRecordResponse, error) {

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.search.DeleteRecord(ctx, userID, req.RecordID); err != nil {
		return nil, s.toStatus(ctx, "DeleteRecord", err)
	}

	s.logger.Info(ctx, "Record deleted", "record_id", req.RecordID)
	return &api.DeleteRecordResponse{}, nil

}
