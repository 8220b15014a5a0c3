package reactor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/jroosing/hydradns/internal/dns"
	"github.com/jroosing/hydradns/internal/logging"
	"github.com/jroosing/hydradns/internal/pool"
)

// QueryRecorded is the information logged to the query audit trail for
// one answered query.
type QueryRecorded struct {
	Timestamp   time.Time
	ClientAddr  string
	Transport   string
	QName       string
	QType       uint16
	RCode       uint16
	AnswerCount int
}

// QueryRecorder receives a non-blocking notification for every answered
// query. Implementations (querylog.Sink) must not block the caller.
type QueryRecorder interface {
	Record(QueryRecorded)
}

// connState is the per-TCP-connection framing state machine (§4.7).
type connState int

const (
	wantLength connState = iota
	wantBody
	complete
)

// tcpConn tracks one accepted TCP connection's partial request and
// response buffers across non-blocking read/write callbacks.
type tcpConn struct {
	fd        int
	addr      unix.Sockaddr
	state     connState
	request   []byte
	response  []byte
	bytesSent int
}

// Reactor owns the UDP socket, the TCP listener, and every accepted TCP
// connection. It runs entirely on the goroutine that calls Start; Join
// blocks until the reactor has shut down.
//
// The record table is supplied at construction and never mutated once
// Start is called, per the single-writer-thread contract.
type Reactor struct {
	sel Selector
	log logging.Sink

	// InstanceID identifies this server run for log correlation across
	// restarts; it is attached to log lines and surfaced by the status
	// API's stats endpoint.
	InstanceID string

	// Stats is exported so the status API can read query counters
	// without the reactor depending on that package.
	Stats Stats

	// QueryLog, if set, is notified of every answered query. It must
	// never block: the reactor thread is single-threaded and a blocking
	// sink would stall every connection.
	QueryLog QueryRecorder

	table *dns.RecordTable

	udpFD       int
	udpReadable bool
	udpBufPool  *pool.Pool[[]byte]
	udpPending  struct {
		request []byte
		addr    unix.Sockaddr
	}

	tcpListenFD int
	conns       map[int]*tcpConn

	shutdown atomic.Bool
	done     chan struct{}
	once     sync.Once
}

// New constructs a Reactor bound to host:port. table must already be
// populated; the reactor never writes to it.
func New(host string, port int, table *dns.RecordTable, log logging.Sink) (*Reactor, error) {
	sel, err := NewSelector()
	if err != nil {
		return nil, fmt.Errorf("creating selector: %w", err)
	}

	r := &Reactor{
		sel:        sel,
		log:        log,
		InstanceID: uuid.New().String(),
		table:      table,
		conns:      make(map[int]*tcpConn),
		done:       make(chan struct{}),
		udpBufPool: pool.New(func() []byte { return make([]byte, maxUDPRequest) }),
	}

	udpFD, err := bindUDP(host, port)
	if err != nil {
		sel.Close()
		return nil, err
	}
	r.udpFD = udpFD

	tcpFD, err := bindTCPListener(host, port)
	if err != nil {
		unix.Close(udpFD)
		sel.Close()
		return nil, err
	}
	r.tcpListenFD = tcpFD

	if err := sel.AddReadable(udpFD); err != nil {
		r.closeAll()
		return nil, err
	}
	r.udpReadable = true
	if err := sel.AddReadable(tcpFD); err != nil {
		r.closeAll()
		return nil, err
	}

	return r, nil
}

func bindUDP(host string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return -1, fmt.Errorf("socket(udp): %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("setting udp non-blocking: %w", err)
	}
	addr, err := sockaddr(host, port)
	if err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("bind(udp): %w", err)
	}
	return fd, nil
}

func bindTCPListener(host string, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, fmt.Errorf("socket(tcp): %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("setting tcp listener non-blocking: %w", err)
	}
	addr, err := sockaddr(host, port)
	if err != nil {
		unix.Close(fd)
		return -1, err
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("bind(tcp): %w", err)
	}
	if err := unix.Listen(fd, 5); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("listen(tcp): %w", err)
	}
	return fd, nil
}

func sockaddr(host string, port int) (unix.Sockaddr, error) {
	ip, err := parseIPv4(host)
	if err != nil {
		return nil, err
	}
	return &unix.SockaddrInet4{Port: port, Addr: ip}, nil
}

// Start runs the reactor loop until shutdown is requested. It is meant
// to be invoked on its own goroutine; the caller uses Join to wait.
func (r *Reactor) Start() {
	defer close(r.done)
	if r.log != nil {
		r.log.Log("reactor started", "instance_id", r.InstanceID)
	}
	for !r.shutdown.Load() {
		err := r.sel.Wait(1000, r.onReadable, r.onWritable)
		if err != nil && r.log != nil {
			r.log.Log("selector wait error", "err", err)
		}
	}
	r.closeAll()
}

// Join blocks until the reactor loop has exited and all sockets are
// closed.
func (r *Reactor) Join() {
	<-r.done
}

// Shutdown requests the reactor loop exit on its next wait cycle. Safe
// to call from another goroutine (e.g. a signal handler).
func (r *Reactor) Shutdown() {
	r.once.Do(func() { r.shutdown.Store(true) })
}

func (r *Reactor) onReadable(fd int) {
	switch fd {
	case r.udpFD:
		r.readUDP()
	case r.tcpListenFD:
		r.acceptTCP()
	default:
		r.readTCP(fd)
	}
}

func (r *Reactor) onWritable(fd int) {
	switch fd {
	case r.udpFD:
		r.writeUDP()
	default:
		r.writeTCP(fd)
	}
}

// countResponse inspects a serialized response's header flags and bumps
// the NXDOMAIN/error counters the status API reports.
func (r *Reactor) countResponse(resp []byte) {
	if len(resp) < dns.HeaderSize {
		return
	}
	flagsWord := uint16(resp[2])<<8 | uint16(resp[3])
	switch dns.RCodeFromFlags(flagsWord) {
	case dns.RCodeNXDomain:
		r.Stats.ResponsesNX.Add(1)
	case dns.RCodeNoError:
	default:
		r.Stats.ResponsesErr.Add(1)
	}
}

// recordQuery notifies the query log, if one is attached, of an answered
// query. Parsing failures are swallowed: a malformed response can't
// happen here since resp was just produced by ProcessQuery, but a nil
// QueryLog is the common case and must stay a no-op.
func (r *Reactor) recordQuery(transport, clientAddr string, resp []byte) {
	if r.QueryLog == nil {
		return
	}
	pkt, err := dns.ParsePacket(resp)
	if err != nil {
		return
	}
	rec := QueryRecorded{
		Timestamp:   time.Now(),
		ClientAddr:  clientAddr,
		Transport:   transport,
		RCode:       uint16(dns.RCodeFromFlags(pkt.Header.Flags)),
		AnswerCount: len(pkt.Answers),
	}
	if len(pkt.Questions) > 0 {
		rec.QName = pkt.Questions[0].Name
		rec.QType = pkt.Questions[0].Type
	}
	r.QueryLog.Record(rec)
}

func (r *Reactor) closeAll() {
	for fd, c := range r.conns {
		r.sel.Remove(fd)
		unix.Close(c.fd)
	}
	r.conns = make(map[int]*tcpConn)
	r.sel.Remove(r.udpFD)
	r.sel.Remove(r.tcpListenFD)
	unix.Close(r.udpFD)
	unix.Close(r.tcpListenFD)
	r.sel.Close()
}
