// Package session names the on-disk layout of a strmctl session and
// resolves which session a process should attach to.
package session

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.strmctl.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".strmctl")
}

// Dir returns the session-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "sessions", name)
}

// SocketPath returns the UDS control socket path for a session.
func SocketPath(name string) string {
	return filepath.Join(Dir(name), "daemon.sock")
}

// LockPath returns the lock file path for a session.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DBPath returns the session's event journal database path.
func DBPath(name string) string {
	return filepath.Join(Dir(name), "strm.db")
}

// LogDir returns the log directory for a session.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the daemon log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "strmd.log")
}

// DiagDir returns where diagnostics bundles are written by default.
func DiagDir(name string) string {
	return filepath.Join(Dir(name), "diag")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the session directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		LogDir(name),
		DiagDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
