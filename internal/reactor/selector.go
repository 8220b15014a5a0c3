// Package reactor implements the single-threaded non-blocking socket
// reactor: one UDP socket, one TCP listener, and the accepted TCP
// connections, all multiplexed on one OS thread through a Selector.
package reactor

// Selector is a readiness-notification primitive: sockets are registered
// for the readable and/or writable interest sets, and Wait blocks until at
// least one is ready, invoking the supplied callbacks.
//
// Implementations are platform-native (epoll on Linux); the reactor
// depends only on this interface, never on a specific syscall.
type Selector interface {
	// AddReadable registers fd for readable events.
	AddReadable(fd int) error
	// AddWritable registers fd for writable events, replacing any
	// existing readable registration for the same fd.
	AddWritable(fd int) error
	// Remove deregisters fd entirely.
	Remove(fd int) error
	// Wait blocks until at least one registered fd is ready, then calls
	// onReadable/onWritable for each ready fd. A negative timeoutMs
	// blocks indefinitely.
	Wait(timeoutMs int, onReadable, onWritable func(fd int)) error
	// Close releases the selector's own resources (e.g. the epoll fd).
	Close() error
}
