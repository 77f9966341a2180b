package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/store"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func waitForEvents(t *testing.T, db *store.DB, want int) []store.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		events, err := db.ListEvents(100)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) >= want {
			return events
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for %d events, have %d", want, len(events))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRecorderPersistsEvents(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	r := NewRecorder(db, b, zap.NewNop())
	r.Start(context.Background())
	defer r.Stop()

	b.Emit(bus.KindServerStarted, "pid=4242")

	events := waitForEvents(t, db, 1)
	if events[0].Kind != bus.KindServerStarted {
		t.Errorf("event kind = %q, want %q", events[0].Kind, bus.KindServerStarted)
	}
	if events[0].Detail != "pid=4242" {
		t.Errorf("event detail = %q, want pid=4242", events[0].Detail)
	}
}

func TestRecorderSkipsStatsTicks(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	r := NewRecorder(db, b, zap.NewNop())
	r.Start(context.Background())
	defer r.Stop()

	b.Emit(bus.KindStatsUpdated, nil)
	b.Emit(bus.KindServerStopped, "")

	events := waitForEvents(t, db, 1)
	for _, e := range events {
		if e.Kind == bus.KindStatsUpdated {
			t.Errorf("stats tick was journaled: %+v", e)
		}
	}
}

func TestRecorderPrunesOldEvents(t *testing.T) {
	db := testDB(t)

	// One row far outside the retention window, one fresh.
	old := time.Now().Add(-48 * time.Hour)
	if _, err := db.Exec(`
		INSERT INTO events (kind, detail, created_at)
		VALUES (?, ?, ?)`,
		bus.KindServerStarted, "stale", old.UnixMilli()); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertEvent(bus.KindServerStarted, "fresh"); err != nil {
		t.Fatal(err)
	}

	b := bus.New()
	r := NewRecorder(db, b, zap.NewNop())
	r.retention = 24 * time.Hour
	r.Start(context.Background())
	defer r.Stop()

	deadline := time.After(2 * time.Second)
	for {
		events, err := db.ListEvents(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) == 1 {
			if events[0].Detail != "fresh" {
				t.Fatalf("surviving event = %+v, want the fresh one", events[0])
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for prune, have %d events", len(events))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRecorderStop(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	r := NewRecorder(db, b, zap.NewNop())
	r.Start(context.Background())
	r.Stop()

	// Give the loop a moment to exit, then publish.
	time.Sleep(20 * time.Millisecond)
	b.Emit(bus.KindServerStarted, "")
	time.Sleep(50 * time.Millisecond)

	events, err := db.ListEvents(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("events journaled after Stop: %+v", events)
	}
}
