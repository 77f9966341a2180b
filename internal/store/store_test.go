package store

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already ran Migrate, so a second run must be a no-op.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestInsertAndListEvents(t *testing.T) {
	db := testDB(t)

	if err := db.InsertEvent("server.started", "pid=4242"); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertEvent("server.exited", "exit status 1"); err != nil {
		t.Fatal(err)
	}

	events, err := db.ListEvents(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Kind != "server.exited" {
		t.Errorf("first event kind = %q, want server.exited", events[0].Kind)
	}
	if events[1].Detail != "pid=4242" {
		t.Errorf("second event detail = %q", events[1].Detail)
	}
}

func TestListEventsLimit(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 5; i++ {
		if err := db.InsertEvent("stats.updated", ""); err != nil {
			t.Fatal(err)
		}
	}

	events, err := db.ListEvents(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Errorf("got %d events, want 3", len(events))
	}
}

func TestPruneEvents(t *testing.T) {
	db := testDB(t)

	// Insert one artificially old event and one fresh one.
	old := time.Now().Add(-48 * time.Hour).UnixMilli()
	if _, err := db.Exec(`INSERT INTO events (kind, detail, created_at) VALUES (?, ?, ?)`,
		"server.started", "", old); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertEvent("server.stopped", ""); err != nil {
		t.Fatal(err)
	}

	n, err := db.PruneEvents(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pruned %d events, want 1", n)
	}

	events, err := db.ListEvents(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Kind != "server.stopped" {
		t.Errorf("remaining events = %+v", events)
	}
}

func TestInsertAndListInvocations(t *testing.T) {
	db := testDB(t)

	inv := &Invocation{
		InvocationID: "9b6f4c1a-0000-0000-0000-000000000000",
		Command:      "server.restart",
		Args:         `{"reason":"manual"}`,
		Ok:           true,
		Message:      "restarted",
	}
	if err := db.InsertInvocation(inv); err != nil {
		t.Fatal(err)
	}

	invs, err := db.ListInvocations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(invs) != 1 {
		t.Fatalf("got %d invocations, want 1", len(invs))
	}
	got := invs[0]
	if got.Command != "server.restart" || !got.Ok || got.Args != `{"reason":"manual"}` {
		t.Errorf("invocation = %+v", got)
	}
}

func TestInvocationIDUnique(t *testing.T) {
	db := testDB(t)

	inv := &Invocation{InvocationID: "dup", Command: "server.start"}
	if err := db.InsertInvocation(inv); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertInvocation(inv); err == nil {
		t.Error("duplicate invocation_id should fail")
	}
}
