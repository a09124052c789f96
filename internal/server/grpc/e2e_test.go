package grpc

import (
	"context"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/api"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/membership"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/server/auth"
	"github.com/dmitrijs2005/blindcalc/internal/server/services"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startEvaluator serves memory-backed services over an in-process listener.
func startEvaluator(t *testing.T, secret string) api.EvaluatorClient {
	t.Helper()

	domain, err := membership.NewDomain([]string{"Alice", "Bob", "Charlie", "David"})
	require.NoError(t, err)

	s := NewGRPCServer("bufnet", nopLogger{},
		services.NewAggregationService(aggregation.NewMemoryStore()),
		services.NewMembershipService(domain, 64),
		services.NewSearchService(services.NewMemoryRecordStore(), nil, nopLogger{}),
		secret)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterEvaluatorServer(srv, s)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return api.NewEvaluatorClient(conn)
}

func authed(t *testing.T, secret, user string) context.Context {
	t.Helper()
	tok, err := auth.GenerateToken(user, []byte(secret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, tok)
}

func TestEndToEnd_AverageOverTheWire(t *testing.T) {
	client := startEvaluator(t, "s3cret")
	ctx := authed(t, "s3cret", "alice")

	kp, err := paillier.GenerateKeys(context.Background(), 128)
	require.NoError(t, err)

	for _, v := range []int64{10, 20, 30} {
		ct, err := paillier.EncryptInt64(kp.Public, v)
		require.NoError(t, err)
		_, err = client.Submit(ctx, &api.SubmitRequest{SessionID: "s", PublicKey: api.EncodePublicKey(kp.Public), Ciphertext: ct.String()})
		require.NoError(t, err)
	}

	resp, err := client.Finalize(ctx, &api.FinalizeRequest{SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)

	sum, err := paillier.ParseCiphertext(resp.Sum)
	require.NoError(t, err)
	avg, err := aggregation.Average(kp.Private, kp.Public, &aggregation.Snapshot{Sum: sum, Count: resp.Count})
	require.NoError(t, err)
	assert.Equal(t, 0, avg.Cmp(big.NewRat(20, 1)))

	_, err = client.Finalize(ctx, &api.FinalizeRequest{SessionID: "empty"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestEndToEnd_MembershipAndSearch(t *testing.T) {
	client := startEvaluator(t, "s3cret")
	ctx := authed(t, "s3cret", "alice")

	dom, err := client.GetDomain(context.Background(), &api.GetDomainRequest{})
	require.NoError(t, err)
	domain, err := membership.NewDomain(dom.Labels)
	require.NoError(t, err)

	kp, err := paillier.GenerateKeys(context.Background(), 128)
	require.NoError(t, err)

	q, err := membership.BuildQuery(context.Background(), kp.Public, domain, "Bob")
	require.NoError(t, err)
	mr, err := client.Membership(ctx, &api.MembershipRequest{PublicKey: api.EncodePublicKey(kp.Public), Query: api.EncodeCiphertexts(q)})
	require.NoError(t, err)
	res, err := paillier.ParseCiphertext(mr.Result)
	require.NoError(t, err)
	ok, err := membership.Interpret(kp.Private, kp.Public, res)
	require.NoError(t, err)
	assert.True(t, ok)

	secret := []byte("room secret")
	tokens, err := trapdoor.DeriveTokens([]string{"hello", "world"}, secret)
	require.NoError(t, err)
	sr, err := client.StoreRecord(ctx, &api.StoreRecordRequest{ConversationID: "room", Payload: []byte{1, 2, 3}, Tokens: api.EncodeTokens(tokens)})
	require.NoError(t, err)

	hello, err := trapdoor.DeriveToken("HELLO", secret)
	require.NoError(t, err)
	found, err := client.Search(ctx, &api.SearchRequest{ConversationID: "room", Token: hello.String()})
	require.NoError(t, err)
	require.Len(t, found.Records, 1)
	assert.Equal(t, sr.RecordID, found.Records[0].ID)
	assert.Equal(t, "alice", found.Records[0].SenderID)
	assert.Equal(t, []byte{1, 2, 3}, found.Records[0].Payload)

	_, err = client.Search(context.Background(), &api.SearchRequest{ConversationID: "room", Token: hello.String()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEndToEnd_DeleteByOtherUserIndistinguishableFromMissing(t *testing.T) {
	client := startEvaluator(t, "s3cret")
	alice := authed(t, "s3cret", "alice")
	mallory := authed(t, "s3cret", "mallory")

	tokens, err := trapdoor.DeriveTokens([]string{"hello"}, []byte("room secret"))
	require.NoError(t, err)
	sr, err := client.StoreRecord(alice, &api.StoreRecordRequest{ConversationID: "room", Payload: []byte{9}, Tokens: api.EncodeTokens(tokens)})
	require.NoError(t, err)

	_, foreignErr := client.DeleteRecord(mallory, &api.DeleteRecordRequest{RecordID: sr.RecordID})
	_, missingErr := client.DeleteRecord(mallory, &api.DeleteRecordRequest{RecordID: "00000000-0000-0000-0000-000000000000"})

	assert.Equal(t, codes.NotFound, status.Code(foreignErr))
	assert.Equal(t, status.Code(missingErr), status.Code(foreignErr))
	assert.Equal(t, status.Convert(missingErr).Message(), status.Convert(foreignErr).Message())

	_, err = client.DeleteRecord(alice, &api.DeleteRecordRequest{RecordID: sr.RecordID})
	require.NoError(t, err)
}
