// Package daemon composes the strmd process out of fx providers and
// lifecycle hooks.
package daemon

import (
	"context"

	"github.com/rberon/strmctl/internal/api"
	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/config"
	"github.com/rberon/strmctl/internal/journal"
	"github.com/rberon/strmctl/internal/lock"
	"github.com/rberon/strmctl/internal/logging"
	"github.com/rberon/strmctl/internal/mediasrv"
	"github.com/rberon/strmctl/internal/session"
	"github.com/rberon/strmctl/internal/status"
	"github.com/rberon/strmctl/internal/store"
	"github.com/rberon/strmctl/internal/supervisor"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved session configuration passed to the fx
// module.
type Params struct {
	SessionName string
	SocketPath  string // optional override for testing; empty = use default
}

// Module returns the fx module for the daemon, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideConfig,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideSupervisor,
			providePoller,
			provideRecorder,
			provideControlService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(session.LogPath(p.SessionName), p.SessionName)
}

func provideConfig() *config.Config {
	return config.LoadOrDefault(session.ConfigPath())
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName))
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

func provideStore(p Params, logger *zap.Logger) (*store.DB, error) {
	dbPath := session.DBPath(p.SessionName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideSupervisor(cfg *config.Config, m *status.Machine, b *bus.Bus, logger *zap.Logger) *supervisor.Supervisor {
	return supervisor.New(cfg.Server, m, b, logger)
}

func providePoller(cfg *config.Config, m *status.Machine, b *bus.Bus, logger *zap.Logger) *mediasrv.Poller {
	return mediasrv.NewPoller(cfg.Server.APIAddr, m, b, logger)
}

func provideRecorder(db *store.DB, b *bus.Bus, logger *zap.Logger) *journal.Recorder {
	return journal.NewRecorder(db, b, logger)
}

func provideControlService(p Params, cfg *config.Config, m *status.Machine, sup *supervisor.Supervisor, poller *mediasrv.Poller, db *store.DB, logger *zap.Logger) *api.ControlService {
	return api.NewControlService(p.SessionName, cfg.Server, m, sup, poller, db, logger)
}

func registerLifecycle(lc fx.Lifecycle, srv *Server, lk *lock.Lock, cfg *config.Config, sup *supervisor.Supervisor, poller *mediasrv.Poller, recorder *journal.Recorder, machine *status.Machine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Journal before anything publishes, so boot events land
			// in the store.
			recorder.Start(context.Background())

			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			if cfg.Server.Autostart {
				go func() {
					if err := sup.Start(context.Background()); err != nil {
						logger.Error("autostart failed", zap.Error(err))
					}
				}()
			} else {
				_ = machine.Transition(status.Idle, "")
				logger.Info("autostart disabled, waiting for server.start")
			}

			poller.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			poller.Stop()
			if err := sup.Stop(); err != nil && err != supervisor.ErrNotRunning {
				logger.Warn("error stopping server", zap.Error(err))
			}
			srv.Stop(ctx)
			recorder.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
