// Command dnsctl is a small diagnostic client for a running dns_server: it
// sends either a DNS query or a control command (quit/exit) over UDP and
// prints the reply.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jroosing/hydradns/internal/dns"
)

func main() {
	var (
		server  = flag.String("server", "127.0.0.1:10000", "DNS server HOST:PORT")
		name    = flag.String("name", "", "Query name (mutually exclusive with -cmd)")
		qtype   = flag.String("qtype", "A", "Query type (A, CNAME, PTR, MX, TXT, or numeric)")
		command = flag.String("cmd", "", "Control command to send instead of a query: quit or exit")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
	)
	flag.Parse()

	if (*command == "") == (*name == "") {
		fmt.Fprintln(os.Stderr, "usage: dnsctl -name <domain> [-qtype A] | -cmd quit")
		os.Exit(1)
	}

	var reqBytes []byte
	var err error
	if *command != "" {
		reqBytes = []byte(*command)
	} else {
		reqBytes, err = buildQuery(*name, *qtype)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsctl: %v\n", err)
		os.Exit(1)
	}

	resp, err := exchange(*server, reqBytes, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnsctl: %v\n", err)
		os.Exit(1)
	}

	if *command != "" {
		fmt.Print(string(resp))
		return
	}

	printResponse(resp)
}

func exchange(server string, req []byte, timeout time.Duration) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(req); err != nil {
		return nil, err
	}

	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func buildQuery(name, qtypeStr string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name required")
	}
	qtype, err := resolveQueryType(qtypeStr)
	if err != nil {
		return nil, err
	}

	pkt := dns.Packet{
		Header: dns.Header{
			ID:    uint16(time.Now().UnixNano()) | 1,
			Flags: dns.HeaderFlags{RD: true}.Encode(),
		},
		Questions: []dns.Question{{Name: strings.TrimSuffix(name, "."), Type: qtype, Class: uint16(dns.ClassIN)}},
	}
	buf := dns.NewOutputBuffer(0, 0)
	if err := pkt.Marshal(buf); err != nil {
		return nil, err
	}
	return buf.Result, nil
}

func resolveQueryType(s string) (uint16, error) {
	if rt, ok := dns.ParseRecordType(s); ok {
		return uint16(rt), nil
	}
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("unrecognized query type %q", s)
}

func printResponse(resp []byte) {
	pkt, err := dns.ParsePacket(resp)
	if err != nil {
		fmt.Printf("received %d bytes (unparseable): %v\n", len(resp), err)
		return
	}

	fmt.Printf("id=%d rcode=%d answers=%d authorities=%d\n",
		pkt.Header.ID,
		dns.RCodeFromFlags(pkt.Header.Flags),
		len(pkt.Answers),
		len(pkt.Authorities),
	)

	rows := make([]string, 0, len(pkt.Answers))
	for _, rr := range pkt.Answers {
		rows = append(rows, formatRR(rr))
	}
	sort.Strings(rows)
	for _, row := range rows {
		fmt.Println(row)
	}
}

func formatRR(rr dns.Record) string {
	name := rr.Name
	if name == "" {
		name = "."
	}
	switch b := rr.Body.(type) {
	case dns.ABody:
		return fmt.Sprintf("%s %d IN A %s", name, rr.TTL, b.String())
	case dns.NameBody:
		return fmt.Sprintf("%s %d IN %s %s", name, rr.TTL, dns.RecordType(rr.Type), b.Name)
	case dns.MXBody:
		return fmt.Sprintf("%s %d IN MX %d %s", name, rr.TTL, b.Preference, b.Exchange)
	case dns.TXTBody:
		return fmt.Sprintf("%s %d IN TXT %q", name, rr.TTL, string(b.Text))
	default:
		return fmt.Sprintf("%s %d IN TYPE%d (unparsed)", name, rr.TTL, rr.Type)
	}
}
