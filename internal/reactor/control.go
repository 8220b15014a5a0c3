package reactor

// dnsHeaderSize is the fixed 12-byte DNS header; any pending UDP
// datagram shorter than this cannot be a DNS query and is interpreted as
// a plain-text control command instead.
const dnsHeaderSize = 12

const (
	replyTerminating = "Terminating...\n"
	replyUnknown     = "Unknown command!\n"
)

// tryControlCommand inspects a pending UDP datagram and, if it is too
// short to be a DNS message, treats it as a text command. It returns the
// reply to send and whether the datagram was in fact a command (ok=false
// means the caller should run the query processor instead).
func tryControlCommand(request []byte) (reply string, shutdown bool, ok bool) {
	if len(request) >= dnsHeaderSize {
		return "", false, false
	}
	switch string(request) {
	case "quit", "exit":
		return replyTerminating, true, true
	default:
		return replyUnknown, false, true
	}
}
