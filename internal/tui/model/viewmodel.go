package model

import (
	"context"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/tui/client"
)

// ViewModel caches daemon state between refreshes and applies the
// stream filter and selection on top of it.
type ViewModel struct {
	mu sync.RWMutex

	client *client.Client
	status *rpc.StatusResponse
	events []rpc.Event
	filter string

	Flash     Flash
	Selection *Selection
}

// NewViewModel creates a view model connected to the daemon client.
func NewViewModel(c *client.Client) *ViewModel {
	return &ViewModel{
		client:    c,
		Selection: NewSelection(),
	}
}

// LoadStatus fetches the current daemon status.
func (vm *ViewModel) LoadStatus(ctx context.Context) error {
	resp, err := vm.client.Control.Status(ctx, &rpc.StatusRequest{})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.status = resp
	vm.mu.Unlock()
	return nil
}

// LoadEvents fetches recent journal events.
func (vm *ViewModel) LoadEvents(ctx context.Context) error {
	resp, err := vm.client.Control.ListEvents(ctx, &rpc.EventsRequest{Limit: 200})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.events = resp.Events
	vm.mu.Unlock()
	return nil
}

// Invoke runs a control command on the daemon.
func (vm *ViewModel) Invoke(ctx context.Context, command string, args map[string]string) (*rpc.InvokeResponse, error) {
	return vm.client.Control.Invoke(ctx, &rpc.InvokeRequest{Command: command, Args: args})
}

// Status returns the latest status snapshot, which may be nil before
// the first successful load.
func (vm *ViewModel) Status() *rpc.StatusResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.status
}

// Events returns the latest journal snapshot.
func (vm *ViewModel) Events() []rpc.Event {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.events
}

// SetFilter sets the stream filter query.
func (vm *ViewModel) SetFilter(query string) {
	vm.mu.Lock()
	vm.filter = query
	vm.mu.Unlock()
}

// Filter returns the active stream filter query.
func (vm *ViewModel) Filter() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filter
}

// Paths returns the status paths with the fuzzy filter applied, in
// match-quality order when filtering and server order otherwise.
func (vm *ViewModel) Paths() []rpc.Path {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.status == nil {
		return nil
	}
	if vm.filter == "" {
		return vm.status.Paths
	}

	names := make([]string, len(vm.status.Paths))
	for i, p := range vm.status.Paths {
		names[i] = p.Name
	}
	matches := fuzzy.Find(vm.filter, names)
	filtered := make([]rpc.Path, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, vm.status.Paths[m.Index])
	}
	return filtered
}
