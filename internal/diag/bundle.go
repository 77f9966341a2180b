// Package diag assembles support bundles: a zip archive with the
// daemon log, config, recent events and a status snapshot.
package diag

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/session"
	"github.com/rberon/strmctl/internal/store"
)

// Manifest identifies a bundle and what it contains.
type Manifest struct {
	BundleID  string   `json:"bundle_id"`
	Session   string   `json:"session"`
	CreatedAt string   `json:"created_at"`
	Files     []string `json:"files"`
}

// Exporter builds diagnostics bundles for one session.
type Exporter struct {
	sessionName string
	db          *store.DB
	statusFn    func() *rpc.StatusResponse
}

// NewExporter creates an exporter. statusFn supplies the live status
// snapshot embedded in each bundle.
func NewExporter(sessionName string, db *store.DB, statusFn func() *rpc.StatusResponse) *Exporter {
	return &Exporter{sessionName: sessionName, db: db, statusFn: statusFn}
}

// Export writes a bundle zip to path. When path is empty a timestamped
// file under the session's diag directory is used. Returns the path
// written.
func (e *Exporter) Export(path string) (string, error) {
	if path == "" {
		name := fmt.Sprintf("strmctl-diag-%s.zip", time.Now().UTC().Format("20060102-150405"))
		path = filepath.Join(session.DiagDir(e.sessionName), name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create bundle: %w", err)
	}
	zw := zip.NewWriter(f)

	manifest := Manifest{
		BundleID:  uuid.NewString(),
		Session:   e.sessionName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	add := func(name string, write func(io.Writer) error) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		if err := write(w); err != nil {
			return err
		}
		manifest.Files = append(manifest.Files, name)
		return nil
	}

	if err := add("daemon.log", e.writeLog); err != nil {
		return "", e.fail(zw, f, path, err)
	}
	if err := add("config.toml", e.writeConfig); err != nil {
		return "", e.fail(zw, f, path, err)
	}
	if err := add("events.json", e.writeEvents); err != nil {
		return "", e.fail(zw, f, path, err)
	}
	if err := add("status.json", e.writeStatus); err != nil {
		return "", e.fail(zw, f, path, err)
	}

	mw, err := zw.Create("bundle.json")
	if err != nil {
		return "", e.fail(zw, f, path, err)
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return "", e.fail(zw, f, path, err)
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Exporter) fail(zw *zip.Writer, f *os.File, path string, err error) error {
	_ = zw.Close()
	_ = f.Close()
	_ = os.Remove(path)
	return fmt.Errorf("export bundle: %w", err)
}

func (e *Exporter) writeLog(w io.Writer) error {
	src, err := os.Open(session.LogPath(e.sessionName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	_, err = io.Copy(w, src)
	return err
}

func (e *Exporter) writeConfig(w io.Writer) error {
	data, err := os.ReadFile(session.ConfigPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (e *Exporter) writeEvents(w io.Writer) error {
	events, err := e.db.ListEvents(500)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}

func (e *Exporter) writeStatus(w io.Writer) error {
	var snap *rpc.StatusResponse
	if e.statusFn != nil {
		snap = e.statusFn()
	}
	if snap == nil {
		snap = &rpc.StatusResponse{Session: e.sessionName}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
