package reactor

import "sync/atomic"

// Stats holds the running query counters the status API's stats endpoint
// reports. All fields are updated with atomic adds from the reactor
// goroutine and read from whatever goroutine serves the HTTP request.
type Stats struct {
	QueriesUDP   atomic.Uint64
	QueriesTCP   atomic.Uint64
	ResponsesNX  atomic.Uint64
	ResponsesErr atomic.Uint64
}

// Snapshot is an immutable copy of Stats suitable for JSON encoding.
type Snapshot struct {
	QueriesUDP   uint64
	QueriesTCP   uint64
	ResponsesNX  uint64
	ResponsesErr uint64
}

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		QueriesUDP:   s.QueriesUDP.Load(),
		QueriesTCP:   s.QueriesTCP.Load(),
		ResponsesNX:  s.ResponsesNX.Load(),
		ResponsesErr: s.ResponsesErr.Load(),
	}
}
