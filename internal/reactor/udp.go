package reactor

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/jroosing/hydradns/internal/dns"
)

// maxUDPRequest is comfortably larger than any legal DNS-over-UDP
// datagram; oversized reads are truncated by the kernel, which is fine
// since an oversized query cannot be meaningfully answered anyway.
const maxUDPRequest = 4096

// udpMaxResponse is the UDP truncation threshold (§4.7): a response
// larger than this is re-serialized with TC=1 and an empty answer set.
const udpMaxResponse = 512

func parseIPv4(host string) (addr [4]byte, err error) {
	if host == "" {
		return addr, nil
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return addr, fmt.Errorf("invalid bind address %q", host)
	}
	v4 := ip.To4()
	if v4 == nil {
		return addr, fmt.Errorf("bind address %q is not IPv4", host)
	}
	copy(addr[:], v4)
	return addr, nil
}

// readUDP receives one pending datagram into the single current-exchange
// slot and flips the socket to writable-only, per the reference reactor's
// toggle policy.
func (r *Reactor) readUDP() {
	buf := r.udpBufPool.Get()
	n, from, err := unix.Recvfrom(r.udpFD, buf, 0)
	if err != nil {
		r.udpBufPool.Put(buf)
		if r.log != nil {
			r.log.Log("udp recvfrom error", "err", err)
		}
		return
	}
	r.udpPending.request = buf[:n]
	r.udpPending.addr = from

	if err := r.sel.AddWritable(r.udpFD); err != nil && r.log != nil {
		r.log.Log("udp register writable failed", "err", err)
	}
	r.udpReadable = false
}

// writeUDP builds and sends the single pending response, then returns
// the socket to readable-only (§4.7, §4.8).
func (r *Reactor) writeUDP() {
	req := r.udpPending.request
	addr := r.udpPending.addr
	r.udpPending.request = nil
	defer r.udpBufPool.Put(req[:cap(req)])

	if reply, shutdown, ok := tryControlCommand(req); ok {
		r.sendUDP(addr, []byte(reply))
		if shutdown {
			r.Shutdown()
		}
	} else {
		r.Stats.QueriesUDP.Add(1)
		out := dns.NewOutputBuffer(0, udpMaxResponse)
		if err := dns.ProcessQuery(req, r.table, out); err != nil {
			r.Stats.ResponsesErr.Add(1)
			if r.log != nil {
				r.log.Log("query processing failed", "err", err)
			}
		} else {
			r.countResponse(out.Result)
			r.recordQuery("udp", sockaddrString(addr), out.Result)
			r.sendUDP(addr, out.Result)
		}
	}

	if err := r.sel.AddReadable(r.udpFD); err != nil && r.log != nil {
		r.log.Log("udp register readable failed", "err", err)
	}
	r.udpReadable = true
}

func (r *Reactor) sendUDP(to unix.Sockaddr, payload []byte) {
	if err := unix.Sendto(r.udpFD, payload, 0, to); err != nil && r.log != nil {
		r.log.Log("udp sendto error", "err", err)
	}
}

func sockaddrString(addr unix.Sockaddr) string {
	in4, ok := addr.(*unix.SockaddrInet4)
	if !ok {
		return ""
	}
	ip := net.IPv4(in4.Addr[0], in4.Addr[1], in4.Addr[2], in4.Addr[3])
	return net.JoinHostPort(ip.String(), strconv.Itoa(in4.Port))
}
