package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/api"
	"github.com/dmitrijs2005/blindcalc/internal/client/models"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.EvaluatorClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials the evaluator lazily; the first call opens the
// connection.
func NewGRPCClient(endpointURL string, accessToken string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewEvaluatorClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) GetDomain(ctx context.Context) ([]string, error) {
	resp, err := s.client.GetDomain(ctx, &api.GetDomainRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Labels, nil
}

func (s *GRPCClient) Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error) {

	req := &api.SubmitRequest{SessionID: sessionID, PublicKey: api.EncodePublicKey(pk), Ciphertext: ct.String()}

	resp, err := s.client.Submit(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Count, nil
}

// Finalize returns the session snapshot. The key and sum in the response
// are parsed and validated before they reach the caller.
func (s *GRPCClient) Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error) {

	resp, err := s.client.Finalize(ctx, &api.FinalizeRequest{SessionID: sessionID})
	if err != nil {
		return nil, s.mapError(err)
	}

	pk, err := resp.PublicKey.Decode()
	if err != nil {
		return nil, fmt.Errorf("finalize response: %w", err)
	}
	sum, err := paillier.ParseCiphertext(resp.Sum)
	if err != nil {
		return nil, fmt.Errorf("finalize response: %w", err)
	}

	return &aggregation.Snapshot{SessionID: sessionID, PublicKey: pk, Sum: sum, Count: resp.Count}, nil
}

func (s *GRPCClient) Membership(ctx context.Context, pk *paillier.PublicKey, query []*paillier.Ciphertext) (*paillier.Ciphertext, error) {

	req := &api.MembershipRequest{PublicKey: api.EncodePublicKey(pk), Query: api.EncodeCiphertexts(query)}

	resp, err := s.client.Membership(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	result, err := paillier.ParseCiphertext(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("membership response: %w", err)
	}
	return result, nil
}

func (s *GRPCClient) StoreRecord(ctx context.Context, conversationID string, payload []byte, tokens []trapdoor.Token) (string, error) {

	req := &api.StoreRecordRequest{ConversationID: conversationID, Payload: payload, Tokens: api.EncodeTokens(tokens)}

	resp, err := s.client.StoreRecord(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.RecordID, nil
}

func (s *GRPCClient) Search(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error) {

	resp, err := s.client.Search(ctx, &api.SearchRequest{ConversationID: conversationID, Token: token.String()})
	if err != nil {
		return nil, s.mapError(err)
	}

	records := make([]*models.Record, 0, len(resp.Records))
	for _, r := range resp.Records {
		records = append(records, &models.Record{
			ID:             r.ID,
			ConversationID: r.ConversationID,
			SenderID:       r.SenderID,
			Payload:        r.Payload,
			CreatedAt:      r.CreatedAt,
		})
	}
	return records, nil
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, recordID string) error {
	_, err := s.client.DeleteRecord(ctx, &api.DeleteRecordRequest{RecordID: recordID})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// invalidArgumentCauses are the sentinels the evaluator reports as
// InvalidArgument; its status message starts with the sentinel's text.
var invalidArgumentCauses = []error{
	common.ErrKeyMismatch,
	common.ErrVectorLength,
	common.ErrInvalidSecret,
	common.ErrRange,
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", common.ErrEmptySession, st.Message())
	case codes.InvalidArgument:
		for _, cause := range invalidArgumentCauses {
			if strings.HasPrefix(st.Message(), cause.Error()) {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, cause)
			}
		}
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
