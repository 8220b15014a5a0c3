package querylog

import (
	"time"

	"github.com/jroosing/hydradns/internal/logging"
	"github.com/jroosing/hydradns/internal/reactor"
)

// Entry is one answered query as recorded in the audit trail.
type Entry struct {
	Timestamp   time.Time
	ClientAddr  string
	Transport   string // "udp" or "tcp"
	QName       string
	QType       uint16
	RCode       uint16
	AnswerCount int
}

// sinkQueueSize bounds the in-flight entry queue; the reactor must never
// block on a full query log, so an overflow entry is dropped and logged
// rather than awaited.
const sinkQueueSize = 1024

// Sink buffers Entry values and drains them on a single background
// goroutine, keeping sqlite writes off the reactor thread.
type Sink struct {
	db     *DB
	log    logging.Sink
	queue  chan Entry
	done   chan struct{}
	closed chan struct{}
}

// NewSink starts the background writer goroutine for db.
func NewSink(db *DB, log logging.Sink) *Sink {
	s := &Sink{
		db:     db,
		log:    log,
		queue:  make(chan Entry, sinkQueueSize),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	go s.run()
	return s
}

// record enqueues e without blocking; if the queue is full the entry is
// dropped.
func (s *Sink) record(e Entry) {
	select {
	case s.queue <- e:
	default:
		if s.log != nil {
			s.log.Log("query log queue full, dropping entry", "qname", e.QName)
		}
	}
}

func (s *Sink) run() {
	defer close(s.closed)
	for {
		select {
		case e := <-s.queue:
			if err := s.db.Insert(e); err != nil && s.log != nil {
				s.log.Log("query log insert failed", "err", err)
			}
		case <-s.done:
			for {
				select {
				case e := <-s.queue:
					if err := s.db.Insert(e); err != nil && s.log != nil {
						s.log.Log("query log insert failed", "err", err)
					}
				default:
					return
				}
			}
		}
	}
}

// Record implements reactor.QueryRecorder, adapting the reactor's
// notification shape to the audit trail's row shape.
func (s *Sink) Record(q reactor.QueryRecorded) {
	s.record(Entry{
		Timestamp:   q.Timestamp,
		ClientAddr:  q.ClientAddr,
		Transport:   q.Transport,
		QName:       q.QName,
		QType:       q.QType,
		RCode:       q.RCode,
		AnswerCount: q.AnswerCount,
	})
}

// Close stops the background writer after draining whatever is queued.
func (s *Sink) Close() error {
	close(s.done)
	<-s.closed
	return s.db.Close()
}
