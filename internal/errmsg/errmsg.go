// Package errmsg maps internal errors onto short messages fit for the
// status bar flash area.
package errmsg

import (
	"context"
	"errors"
	"strings"

	"github.com/rberon/strmctl/internal/lock"
	"github.com/rberon/strmctl/internal/secret"
	"github.com/rberon/strmctl/internal/supervisor"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Humanize turns err into a one-line message for the user. The raw
// error text is kept for the log, not shown here.
func Humanize(err error) string {
	if err == nil {
		return ""
	}

	var held *lock.HeldError
	switch {
	case errors.As(err, &held):
		return "Another daemon owns this session"
	case errors.Is(err, supervisor.ErrNotRunning):
		return "Server is not running"
	case errors.Is(err, supervisor.ErrAlreadyRunning):
		return "Server is already running"
	case errors.Is(err, secret.ErrNotFound):
		return "No publish passphrase stored"
	case errors.Is(err, context.DeadlineExceeded):
		return "Daemon did not respond in time"
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.Unavailable:
			return "Daemon is not reachable"
		case codes.InvalidArgument:
			return st.Message()
		case codes.DeadlineExceeded:
			return "Daemon did not respond in time"
		}
	}

	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Something went wrong"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
