// Package api implements the daemon side of the control service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rberon/strmctl/internal/config"
	"github.com/rberon/strmctl/internal/diag"
	"github.com/rberon/strmctl/internal/mediasrv"
	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/status"
	"github.com/rberon/strmctl/internal/store"
	"github.com/rberon/strmctl/internal/supervisor"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// Control command names accepted by Invoke.
const (
	CmdServerStart   = "server.start"
	CmdServerStop    = "server.stop"
	CmdServerRestart = "server.restart"
	CmdDiagExport    = "diag.export"
)

// ControlService implements rpc.ControlServer against the supervisor,
// state machine and event journal.
type ControlService struct {
	sessionName string
	startedAt   time.Time
	cfg         config.ServerConfig
	machine     *status.Machine
	sup         *supervisor.Supervisor
	poller      *mediasrv.Poller
	db          *store.DB
	exporter    *diag.Exporter
	logger      *zap.Logger
}

// NewControlService creates the control service.
func NewControlService(
	sessionName string,
	cfg config.ServerConfig,
	machine *status.Machine,
	sup *supervisor.Supervisor,
	poller *mediasrv.Poller,
	db *store.DB,
	logger *zap.Logger,
) *ControlService {
	s := &ControlService{
		sessionName: sessionName,
		startedAt:   time.Now(),
		cfg:         cfg,
		machine:     machine,
		sup:         sup,
		poller:      poller,
		db:          db,
		logger:      logger,
	}
	s.exporter = diag.NewExporter(sessionName, db, s.snapshot)
	return s
}

// Invoke runs one named control command. Every call gets an invocation
// ID and lands in the audit trail regardless of outcome.
func (s *ControlService) Invoke(ctx context.Context, req *rpc.InvokeRequest) (*rpc.InvokeResponse, error) {
	invocationID := uuid.NewString()
	s.logger.Info("control command",
		zap.String("invocation_id", invocationID),
		zap.String("command", req.Command))

	resp, err := s.run(ctx, req)
	s.audit(invocationID, req, resp, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ControlService) run(ctx context.Context, req *rpc.InvokeRequest) (*rpc.InvokeResponse, error) {
	switch req.Command {
	case CmdServerStart:
		if err := s.sup.Start(context.WithoutCancel(ctx)); err != nil {
			return nil, grpcstatus.Errorf(codes.FailedPrecondition, "start server: %v", err)
		}
		return &rpc.InvokeResponse{Ok: true, Message: "server started"}, nil

	case CmdServerStop:
		if err := s.sup.Stop(); err != nil {
			return nil, grpcstatus.Errorf(codes.FailedPrecondition, "stop server: %v", err)
		}
		return &rpc.InvokeResponse{Ok: true, Message: "server stopping"}, nil

	case CmdServerRestart:
		if err := s.sup.Restart(context.WithoutCancel(ctx)); err != nil {
			return nil, grpcstatus.Errorf(codes.FailedPrecondition, "restart server: %v", err)
		}
		return &rpc.InvokeResponse{Ok: true, Message: "server restarted"}, nil

	case CmdDiagExport:
		path, err := s.exporter.Export(req.Args["path"])
		if err != nil {
			return nil, grpcstatus.Errorf(codes.Internal, "export diagnostics: %v", err)
		}
		return &rpc.InvokeResponse{Ok: true, Message: "bundle written", Detail: path}, nil

	default:
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "unknown command %q", req.Command)
	}
}

func (s *ControlService) audit(invocationID string, req *rpc.InvokeRequest, resp *rpc.InvokeResponse, err error) {
	args := ""
	if len(req.Args) > 0 {
		if data, jerr := json.Marshal(req.Args); jerr == nil {
			args = string(data)
		}
	}
	inv := &store.Invocation{
		InvocationID: invocationID,
		Command:      req.Command,
		Args:         args,
	}
	if err != nil {
		inv.Message = err.Error()
	} else if resp != nil {
		inv.Ok = resp.Ok
		inv.Message = resp.Message
	}
	if dberr := s.db.InsertInvocation(inv); dberr != nil {
		s.logger.Error("failed to audit invocation", zap.Error(dberr))
	}
}

// Status reports the daemon's full view of the managed server.
func (s *ControlService) Status(_ context.Context, _ *rpc.StatusRequest) (*rpc.StatusResponse, error) {
	return s.snapshot(), nil
}

func (s *ControlService) snapshot() *rpc.StatusResponse {
	resp := &rpc.StatusResponse{
		Session:       s.sessionName,
		State:         string(s.machine.Current()),
		StateMessage:  s.machine.Message(),
		UptimeMs:      time.Since(s.startedAt).Milliseconds(),
		ServerRunning: s.sup.Running(),
		ServerPid:     s.sup.Pid(),
		Restarts:      s.sup.Restarts(),
		IngestAddr:    fmt.Sprintf("srt://0.0.0.0:%d", s.cfg.IngestPort),
		PlayURL:       s.cfg.PlayURL,
	}
	if s.poller != nil {
		snap := s.poller.Last()
		resp.Publishers = snap.Publishers
		resp.Readers = snap.Readers
		for _, p := range snap.Paths {
			resp.Paths = append(resp.Paths, rpc.Path{
				Name:    p.Name,
				Ready:   p.Ready,
				Source:  p.Source,
				Readers: p.Readers,
			})
		}
	}
	return resp
}

// ListEvents returns the most recent journaled events, newest first.
func (s *ControlService) ListEvents(_ context.Context, req *rpc.EventsRequest) (*rpc.EventsResponse, error) {
	events, err := s.db.ListEvents(req.Limit)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "list events: %v", err)
	}
	resp := &rpc.EventsResponse{}
	for _, e := range events {
		resp.Events = append(resp.Events, rpc.Event{
			Kind:      e.Kind,
			Detail:    e.Detail,
			CreatedAt: time.UnixMilli(e.CreatedAt).UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
