package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/client/client"
	"github.com/dmitrijs2005/blindcalc/internal/client/config"
	"github.com/dmitrijs2005/blindcalc/internal/client/keystore"
	"github.com/dmitrijs2005/blindcalc/internal/client/services"
	"github.com/dmitrijs2005/blindcalc/internal/filex"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// keyGenerator is the part of keystore.KeyService the CLI drives directly.
type keyGenerator interface {
	Generate(ctx context.Context) (*paillier.KeyPair, error)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	client  client.Client
	db      *sql.DB
	keys    keyGenerator
	compute services.ComputeService
	search  services.SearchService
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the key store under the data directory, prepares the
// evaluator client and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewTextLogger(os.Stderr, "warn")

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := keystore.Open(ctx, keystoreDSN(dir, c.KeystoreDSN))
	if err != nil {
		return nil, fmt.Errorf("error opening key store: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	keys := keystore.NewKeyService(db, c.KeyBits, c.KeygenTimeout)
	tokenizer := trapdoor.NewTokenizer(c.MinWordLength, c.StopWords)

	return &App{
		config:  c,
		logger:  logger,
		client:  apiClient,
		db:      db,
		keys:    keys,
		compute: services.NewComputeService(apiClient, keys),
		search:  services.NewSearchService(apiClient, tokenizer, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// keystoreDSN places a bare file name inside dir; absolute paths, file:
// URIs and in-memory databases are used as given.
func keystoreDSN(dir, dsn string) string {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") || filepath.IsAbs(dsn) {
		return dsn
	}
	return filepath.Join(dir, dsn)
}

func (app *App) setMode(ctx context.Context, mode Mode) {
	app.mu.Lock()
	changed := app.mode != mode
	app.mode = mode
	app.mu.Unlock()

	if changed {
		app.logger.Info(ctx, "Switched mode", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) getStatus() string {
	mode := a.Mode()
	if mode == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", mode)
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to blindcalc CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		a.logger.Warn(context.Background(), "Error closing client", "error", err.Error())
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "Error closing key store", "error", err.Error())
		}
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
