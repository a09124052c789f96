// Package server wires the evaluator together: configuration, logging,
// storage backend, services and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/membership"
	"github.com/dmitrijs2005/blindcalc/internal/server/blobs"
	"github.com/dmitrijs2005/blindcalc/internal/server/config"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blindcalc/internal/server/services"

	gs "github.com/dmitrijs2005/blindcalc/internal/server/grpc"
)

// openDB is a seam for tests.
var openDB = repomanager.Open

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	aggregationService *services.AggregationService
	membershipService  *services.MembershipService
	searchService      *services.SearchService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	domain, err := membership.NewDomain(c.Domain)
	if err != nil {
		return nil, fmt.Errorf("membership domain: %w", err)
	}

	app := &App{config: c, logger: logger}

	var (
		store   aggregation.Store
		records services.RecordStore
	)

	switch c.StorageBackend {
	case config.StorageMemory:
		store = aggregation.NewMemoryStore()
		records = services.NewMemoryRecordStore()
	case config.StoragePostgres:
		db, err := openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		app.db = db
		store = services.NewSessionStore(db, m)
		records = services.NewPostgresRecordStore(db, m)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	var blobStore blobs.Store
	if c.BlobStorageEnabled() {
		s3, err := blobs.NewS3Store(ctx, c)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("blob storage: %w", err)
		}
		blobStore = s3
	}

	app.aggregationService = services.NewAggregationService(store)
	app.membershipService = services.NewMembershipService(domain, c.MaxQueryLength)
	app.searchService = services.NewSearchService(records, blobStore, logger)

	logger.Info(ctx, "App configured", "storage", c.StorageBackend, "domain_size", domain.Size(), "blob_storage", c.BlobStorageEnabled())

	return app, nil
}

// Close releases the database pool, if any.
func (app *App) Close() {
	if app.db != nil {
		_ = app.db.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.aggregationService, app.membershipService, app.searchService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.Close()
	app.logger.Info(ctx, "App stopped")
}
