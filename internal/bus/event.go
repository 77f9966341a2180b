package bus

import "time"

// Event kinds published by the daemon. Subscribers filter on the
// namespace prefix, so related kinds share a dotted prefix.
const (
	KindServerStarting  = "server.starting"
	KindServerStarted   = "server.started"
	KindServerStopped   = "server.stopped"
	KindServerExited    = "server.exited"
	KindServerRestart   = "server.restarting"
	KindServerDegraded  = "server.degraded"
	KindServerRecovered = "server.recovered"

	KindStatsUpdated     = "stats.updated"
	KindStatsPublisherUp = "stats.publisher_up"
	KindStatsPublisherGn = "stats.publisher_gone"

	KindSessionState = "session.state_changed"
	KindSessionError = "session.error"
)

// Event is a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
