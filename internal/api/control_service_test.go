package api

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/config"
	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/status"
	"github.com/rberon/strmctl/internal/store"
	"github.com/rberon/strmctl/internal/supervisor"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

func testService(t *testing.T) (*ControlService, *status.Machine) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	b := bus.New()
	m := status.NewMachine(b)
	cfg := config.ServerConfig{Command: "sleep", Args: []string{"60"}, IngestPort: 8890, PlayURL: "srt://example:8890"}
	sup := supervisor.New(cfg, m, b, zap.NewNop())
	t.Cleanup(func() { _ = sup.Stop() })

	return NewControlService("test", cfg, m, sup, nil, db, zap.NewNop()), m
}

func TestInvokeStartStop(t *testing.T) {
	svc, m := testService(t)
	ctx := context.Background()

	resp, err := svc.Invoke(ctx, &rpc.InvokeRequest{Command: CmdServerStart})
	if err != nil {
		t.Fatalf("Invoke(server.start) error = %v", err)
	}
	if !resp.Ok {
		t.Errorf("response = %+v", resp)
	}
	if m.Current() != status.Live {
		t.Errorf("state = %s, want LIVE", m.Current())
	}

	if _, err := svc.Invoke(ctx, &rpc.InvokeRequest{Command: CmdServerStop}); err != nil {
		t.Fatalf("Invoke(server.stop) error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for m.Current() != status.Stopped {
		select {
		case <-deadline:
			t.Fatalf("state = %s, want STOPPED", m.Current())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestInvokeStopWithoutStart(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Invoke(context.Background(), &rpc.InvokeRequest{Command: CmdServerStop})
	if grpcstatus.Code(err) != codes.FailedPrecondition {
		t.Errorf("error code = %v, want FailedPrecondition", grpcstatus.Code(err))
	}
}

func TestInvokeUnknownCommand(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Invoke(context.Background(), &rpc.InvokeRequest{Command: "bogus.command"})
	if grpcstatus.Code(err) != codes.InvalidArgument {
		t.Errorf("error code = %v, want InvalidArgument", grpcstatus.Code(err))
	}
}

func TestInvokeAuditsEveryCall(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, _ = svc.Invoke(ctx, &rpc.InvokeRequest{Command: CmdServerStart})
	_, _ = svc.Invoke(ctx, &rpc.InvokeRequest{Command: "bogus.command"})

	invs, err := svc.db.ListInvocations(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(invs) != 2 {
		t.Fatalf("got %d invocations, want 2", len(invs))
	}
	// Newest first: the failed call.
	if invs[0].Command != "bogus.command" || invs[0].Ok {
		t.Errorf("failed invocation = %+v", invs[0])
	}
	if invs[1].Command != CmdServerStart || !invs[1].Ok {
		t.Errorf("ok invocation = %+v", invs[1])
	}
	if invs[0].InvocationID == invs[1].InvocationID {
		t.Error("invocation IDs not unique")
	}
}

func TestInvokeDiagExport(t *testing.T) {
	svc, _ := testService(t)

	out := filepath.Join(t.TempDir(), "bundle.zip")
	resp, err := svc.Invoke(context.Background(), &rpc.InvokeRequest{
		Command: CmdDiagExport,
		Args:    map[string]string{"path": out},
	})
	if err != nil {
		t.Fatalf("Invoke(diag.export) error = %v", err)
	}
	if resp.Detail != out {
		t.Errorf("Detail = %q, want %q", resp.Detail, out)
	}
}

func TestStatusSnapshot(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	st, err := svc.Status(ctx, &rpc.StatusRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if st.Session != "test" || st.State != string(status.Booting) {
		t.Errorf("status = %+v", st)
	}
	if st.ServerRunning {
		t.Error("ServerRunning = true before start")
	}
	if st.IngestAddr != "srt://0.0.0.0:8890" {
		t.Errorf("IngestAddr = %q", st.IngestAddr)
	}

	if _, err := svc.Invoke(ctx, &rpc.InvokeRequest{Command: CmdServerStart}); err != nil {
		t.Fatal(err)
	}
	st, err = svc.Status(ctx, &rpc.StatusRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !st.ServerRunning || st.ServerPid == 0 {
		t.Errorf("status after start = %+v", st)
	}
}

func TestListEvents(t *testing.T) {
	svc, _ := testService(t)

	if err := svc.db.InsertEvent("server.started", "pid=1"); err != nil {
		t.Fatal(err)
	}
	resp, err := svc.ListEvents(context.Background(), &rpc.EventsRequest{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Kind != "server.started" {
		t.Errorf("events = %+v", resp.Events)
	}
	if resp.Events[0].CreatedAt == "" {
		t.Error("CreatedAt not formatted")
	}
}
