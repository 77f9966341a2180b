// Package supervisor owns the media server child process: it launches
// the configured command, watches for exits and restarts it with
// backoff, and drives the session state machine.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/config"
	"github.com/rberon/strmctl/internal/status"
	"go.uber.org/zap"
)

// ErrNotRunning is returned by Stop and Restart when no server process
// is active.
var ErrNotRunning = errors.New("server is not running")

// ErrAlreadyRunning is returned by Start when the server is already up.
var ErrAlreadyRunning = errors.New("server is already running")

const (
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

// Supervisor manages the media server process lifecycle.
type Supervisor struct {
	cfg     config.ServerConfig
	machine *status.Machine
	bus     *bus.Bus
	logger  *zap.Logger

	// backoff start point, shortened in tests
	baseBackoff time.Duration

	mu        sync.Mutex
	cmd       *exec.Cmd
	waitDone  chan struct{}
	startedAt time.Time
	restarts  int
	stopping  bool
	cancel    context.CancelFunc
}

// New creates a supervisor that has not launched anything yet.
func New(cfg config.ServerConfig, m *status.Machine, b *bus.Bus, logger *zap.Logger) *Supervisor {
	return &Supervisor{
		cfg:         cfg,
		machine:     m,
		bus:         b,
		logger:      logger,
		baseBackoff: initialBackoff,
	}
}

// Start launches the server process and begins watching it.
func (s *Supervisor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil {
		return ErrAlreadyRunning
	}
	s.stopping = false

	ctx, s.cancel = context.WithCancel(ctx)
	return s.launchLocked(ctx)
}

// launchLocked spawns the process and a waiter goroutine. Caller holds
// the mutex.
func (s *Supervisor) launchLocked(ctx context.Context) error {
	_ = s.machine.Transition(status.Starting, "")
	s.bus.Emit(bus.KindServerStarting, s.cfg.Command)

	cmd := exec.Command(s.cfg.Command, s.cfg.Args...)
	if err := cmd.Start(); err != nil {
		_ = s.machine.Transition(status.Error, err.Error())
		s.bus.Emit(bus.KindSessionError, err)
		return fmt.Errorf("start server: %w", err)
	}

	s.cmd = cmd
	s.startedAt = time.Now()
	s.logger.Info("server started",
		zap.String("command", s.cfg.Command),
		zap.Int("pid", cmd.Process.Pid))

	_ = s.machine.Transition(status.Live, "")
	s.bus.Emit(bus.KindServerStarted, fmt.Sprintf("pid=%d", cmd.Process.Pid))

	done := make(chan struct{})
	s.waitDone = done
	go s.wait(ctx, cmd, done)
	return nil
}

// wait blocks on the process and restarts it with backoff unless the
// exit was requested by Stop. The waiter is the only place that reaps
// the process; done is closed once the exit has been collected.
func (s *Supervisor) wait(ctx context.Context, cmd *exec.Cmd, done chan<- struct{}) {
	err := cmd.Wait()
	close(done)

	s.mu.Lock()
	if s.cmd != cmd {
		// A newer process replaced this one.
		s.mu.Unlock()
		return
	}
	s.cmd = nil
	stopping := s.stopping
	restarts := s.restarts
	s.mu.Unlock()

	if stopping {
		s.logger.Info("server stopped")
		_ = s.machine.Transition(status.Stopped, "")
		s.bus.Emit(bus.KindServerStopped, nil)
		return
	}

	detail := "exit status 0"
	if err != nil {
		detail = err.Error()
	}
	s.logger.Warn("server exited unexpectedly", zap.String("exit", detail))
	s.bus.Emit(bus.KindServerExited, detail)
	_ = s.machine.Transition(status.Restarting, detail)

	backoff := s.baseBackoff << uint(min(restarts, 5))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	s.bus.Emit(bus.KindServerRestart, fmt.Sprintf("backoff=%s", backoff))

	select {
	case <-ctx.Done():
		return
	case <-time.After(backoff):
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping || s.cmd != nil {
		return
	}
	s.restarts++
	if err := s.launchLocked(ctx); err != nil {
		s.logger.Error("restart failed", zap.Error(err))
	}
}

// Stop terminates the server process. The waiter observes the exit and
// moves the machine to Stopped without restarting.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	cmd := s.cmd
	s.stopping = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if cmd == nil {
		return ErrNotRunning
	}
	return cmd.Process.Kill()
}

// Restart stops the running server and launches a fresh one.
func (s *Supervisor) Restart(ctx context.Context) error {
	s.mu.Lock()
	cmd := s.cmd
	done := s.waitDone
	if cmd != nil {
		// Detach the waiter so the kill is not treated as a crash.
		s.stopping = true
		s.cmd = nil
	}
	s.mu.Unlock()

	if cmd != nil {
		_ = cmd.Process.Kill()
		// The waiter reaps the exit; launching before it has done so
		// would leave the old process uncollected.
		<-done
		_ = s.machine.Transition(status.Restarting, "manual restart")
		s.bus.Emit(bus.KindServerRestart, "manual")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopping = false
	s.restarts++
	ctx, s.cancel = context.WithCancel(ctx)
	return s.launchLocked(ctx)
}

// Running reports whether a server process is currently active.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// Pid returns the server process ID, or 0 when not running.
func (s *Supervisor) Pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Restarts returns how many times the server has been relaunched.
func (s *Supervisor) Restarts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restarts
}

// Uptime returns how long the current process has been running, or 0
// when stopped.
func (s *Supervisor) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return 0
	}
	return time.Since(s.startedAt)
}
