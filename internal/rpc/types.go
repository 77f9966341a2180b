package rpc

// InvokeRequest asks the daemon to run a named control command. Args
// carries command-specific parameters; unknown commands are rejected
// with InvalidArgument.
type InvokeRequest struct {
	Command string            `json:"command"`
	Args    map[string]string `json:"args,omitempty"`
}

// InvokeResponse reports the outcome of a control command.
type InvokeResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type StatusRequest struct{}

// Path describes one media path on the server and its current load.
type Path struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Source  string `json:"source,omitempty"`
	Readers int    `json:"readers"`
}

// StatusResponse is the daemon's full view of the managed server.
type StatusResponse struct {
	Session       string `json:"session"`
	State         string `json:"state"`
	StateMessage  string `json:"state_message,omitempty"`
	UptimeMs      int64  `json:"uptime_ms"`
	ServerRunning bool   `json:"server_running"`
	ServerPid     int    `json:"server_pid,omitempty"`
	Restarts      int    `json:"restarts"`
	Paths         []Path `json:"paths,omitempty"`
	Publishers    int    `json:"publishers"`
	Readers       int    `json:"readers"`
	IngestAddr    string `json:"ingest_addr,omitempty"`
	PlayURL       string `json:"play_url,omitempty"`
}

type EventsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// Event is one journaled daemon event.
type Event struct {
	Kind      string `json:"kind"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}
