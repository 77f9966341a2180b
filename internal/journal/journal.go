// Package journal records bus events into the session's event store so
// they survive daemon restarts and feed the events view and
// diagnostics bundles.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/store"
	"go.uber.org/zap"
)

const (
	defaultRetention = 14 * 24 * time.Hour
	sweepInterval    = time.Hour
)

// Recorder drains the bus into the event journal.
type Recorder struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc

	// journal retention window, shortened in tests
	retention time.Duration
}

// NewRecorder creates a recorder that is not yet running.
func NewRecorder(db *store.DB, b *bus.Bus, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, bus: b, logger: logger, retention: defaultRetention}
}

// Start subscribes to the bus and begins persisting events. It also
// starts the retention sweep that drops journal rows older than the
// retention window.
func (r *Recorder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	ch, unsub := r.bus.Subscribe("", 256)
	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				r.record(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
	go r.sweep(ctx)
}

// sweep prunes old journal rows once at startup and then periodically.
func (r *Recorder) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		r.prune()
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Recorder) prune() {
	n, err := r.db.PruneEvents(time.Now().Add(-r.retention))
	if err != nil {
		r.logger.Error("failed to prune event journal", zap.Error(err))
		return
	}
	if n > 0 {
		r.logger.Info("pruned event journal", zap.Int64("removed", n))
	}
}

// Stop halts the recorder loop.
func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Recorder) record(evt bus.Event) {
	// Stats ticks arrive every poll interval and would swamp the
	// journal, so they are not persisted.
	if strings.HasPrefix(evt.Kind, "stats.") {
		return
	}
	if err := r.db.InsertEvent(evt.Kind, detailOf(evt.Payload)); err != nil {
		r.logger.Error("failed to journal event", zap.Error(err), zap.String("kind", evt.Kind))
	}
}

func detailOf(payload any) string {
	switch v := payload.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%+v", v)
	}
}
