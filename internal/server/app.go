// Package server initializes and runs the application server. It owns the
// process-wide storage connection (established once, closed on shutdown),
// wires the services together and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/haiderzaidi/allaboutme/internal/logging"
	"github.com/haiderzaidi/allaboutme/internal/server/config"
	"github.com/haiderzaidi/allaboutme/internal/server/credentials"
	"github.com/haiderzaidi/allaboutme/internal/server/httpapi"
	"github.com/haiderzaidi/allaboutme/internal/server/memories"
	"github.com/haiderzaidi/allaboutme/internal/server/session"
	"github.com/haiderzaidi/allaboutme/internal/server/shared/db"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	manager, err := db.NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec, err := session.New(cfg.TokenMode, []byte(cfg.SecretKey), cfg.SessionValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("session codec init error: %w", err)
	}

	creds := credentials.NewStore(cfg.BcryptCost)
	us := users.NewService(manager.Users(), creds)
	ms := memories.NewService(manager.Memories())

	httpServer := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, ms, codec)

	return &App{config: cfg, logger: logger, manager: manager, httpServer: httpServer}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.manager.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "error closing storage connection", "error", err)
	}
}
