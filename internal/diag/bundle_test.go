package diag

import (
	"archive/zip"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/store"
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

func TestExportBundle(t *testing.T) {
	db := testDB(t)
	if err := db.InsertEvent("server.started", "pid=99"); err != nil {
		t.Fatal(err)
	}

	statusFn := func() *rpc.StatusResponse {
		return &rpc.StatusResponse{Session: "test", State: "LIVE", Readers: 2}
	}
	e := NewExporter("test", db, statusFn)

	out := filepath.Join(t.TempDir(), "bundle.zip")
	path, err := e.Export(out)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if path != out {
		t.Errorf("Export() path = %q, want %q", path, out)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = zr.Close() }()

	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		files[f.Name] = data
	}

	for _, name := range []string{"bundle.json", "daemon.log", "config.toml", "events.json", "status.json"} {
		if _, ok := files[name]; !ok {
			t.Errorf("bundle missing %s", name)
		}
	}

	var manifest Manifest
	if err := json.Unmarshal(files["bundle.json"], &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if manifest.BundleID == "" || manifest.Session != "test" {
		t.Errorf("manifest = %+v", manifest)
	}

	var events []store.Event
	if err := json.Unmarshal(files["events.json"], &events); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if len(events) != 1 || events[0].Kind != "server.started" {
		t.Errorf("events = %+v", events)
	}

	var snap rpc.StatusResponse
	if err := json.Unmarshal(files["status.json"], &snap); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if snap.State != "LIVE" || snap.Readers != 2 {
		t.Errorf("status = %+v", snap)
	}
}

func TestExportBundleNilStatus(t *testing.T) {
	db := testDB(t)
	e := NewExporter("test", db, nil)

	out := filepath.Join(t.TempDir(), "bundle.zip")
	if _, err := e.Export(out); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
}
