package reactor

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/jroosing/hydradns/internal/dns"
	"github.com/jroosing/hydradns/internal/helpers"
)

const tcpReadChunk = 4096

// acceptTCP accepts one pending connection, makes it non-blocking, and
// registers it for readable (§4.7 accept handling).
func (r *Reactor) acceptTCP() {
	fd, addr, err := unix.Accept(r.tcpListenFD)
	if err != nil {
		if r.log != nil {
			r.log.Log("tcp accept error", "err", err)
		}
		return
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil && r.log != nil {
		r.log.Log("tcp setsockopt SO_REUSEADDR failed", "err", err, "fd", fd)
	}
	c := &tcpConn{fd: fd, addr: addr, state: wantLength}
	r.conns[fd] = c
	if err := r.sel.AddReadable(fd); err != nil && r.log != nil {
		r.log.Log("tcp register readable failed", "err", err, "fd", fd)
	}
}

// readTCP drives the WantLength -> WantBody -> Complete framing state
// machine for one connection, reading whatever is currently available
// without blocking.
func (r *Reactor) readTCP(fd int) {
	c, ok := r.conns[fd]
	if !ok {
		return
	}

	buf := make([]byte, tcpReadChunk)
	n, err := unix.Read(fd, buf)
	if err != nil {
		if err == unix.EAGAIN {
			return
		}
		r.destroyConn(c)
		return
	}
	if n <= 0 {
		r.destroyConn(c)
		return
	}
	c.request = append(c.request, buf[:n]...)

	for {
		switch c.state {
		case wantLength:
			if len(c.request) < 2 {
				return
			}
			c.state = wantBody
		case wantBody:
			expected := int(binary.BigEndian.Uint16(c.request[0:2]))
			if len(c.request) < 2+expected {
				return
			}
			c.state = complete
		case complete:
			if err := r.sel.Remove(fd); err != nil && r.log != nil {
				r.log.Log("tcp deregister readable failed", "err", err, "fd", fd)
			}
			if err := r.sel.AddWritable(fd); err != nil && r.log != nil {
				r.log.Log("tcp register writable failed", "err", err, "fd", fd)
			}
			return
		}
	}
}

// writeTCP builds the response on first call (response construction,
// §4.7) and writes as much as the socket currently accepts; a short
// write leaves bytesSent advanced for the next writable callback.
func (r *Reactor) writeTCP(fd int) {
	c, ok := r.conns[fd]
	if !ok {
		return
	}

	if c.response == nil {
		r.Stats.QueriesTCP.Add(1)
		out := dns.NewOutputBuffer(2, 0)
		out.Result = append(out.Result, 0, 0)
		if err := dns.ProcessQuery(c.request[2:], r.table, out); err != nil {
			r.Stats.ResponsesErr.Add(1)
			if r.log != nil {
				r.log.Log("tcp query processing failed", "err", err, "fd", fd)
			}
			r.destroyConn(c)
			return
		}
		out.OverwriteU16(0, helpers.ClampIntToUint16(len(out.Result)-2))
		r.countResponse(out.Result[2:])
		r.recordQuery("tcp", sockaddrString(c.addr), out.Result[2:])
		c.response = out.Result
	}

	for c.bytesSent < len(c.response) {
		n, err := unix.Write(fd, c.response[c.bytesSent:])
		if err != nil {
			if err == unix.EAGAIN {
				return
			}
			r.destroyConn(c)
			return
		}
		if n <= 0 {
			return
		}
		c.bytesSent += n
	}

	r.destroyConn(c)
}

func (r *Reactor) destroyConn(c *tcpConn) {
	r.sel.Remove(c.fd)
	unix.Close(c.fd)
	delete(r.conns, c.fd)
}
