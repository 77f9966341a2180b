package store

// Event is one journaled daemon event.
type Event struct {
	ID        int64
	Kind      string
	Detail    string
	CreatedAt int64
}

// Invocation is one audited control command.
type Invocation struct {
	ID           int64
	InvocationID string
	Command      string
	Args         string
	Ok           bool
	Message      string
	CreatedAt    int64
}
