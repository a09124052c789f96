// Package grpc exposes the evaluator services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/api"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"google.golang.org/grpc"
)

type aggregationSvc interface {
	Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error)
	Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error)
}

type membershipSvc interface {
	Domain() []string
	Evaluate(ctx context.Context, pk *paillier.PublicKey, query []*paillier.Ciphertext) (*paillier.Ciphertext, error)
}

type searchSvc interface {
	StoreRecord(ctx context.Context, senderID, conversationID string, payload []byte, tokens []trapdoor.Token) (*models.Record, error)
	Search(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error)
	DeleteRecord(ctx context.Context, callerID, recordID string) error
}

// GRPCServer serves blindcalc.v1.Evaluator. All methods but Ping and
// GetDomain require a bearer access token.
type GRPCServer struct {
	api.UnimplementedEvaluatorServer
	address     string
	aggregation aggregationSvc
	membership  membershipSvc
	search      searchSvc
	logger      logging.Logger
	jwtSecret   []byte
}

func NewGRPCServer(a string, l logging.Logger, as aggregationSvc, ms membershipSvc, ss searchSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		aggregation: as,
		membership:  ms,
		search:      ss,
		jwtSecret:   []byte(secretKey),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	api.RegisterEvaluatorServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
