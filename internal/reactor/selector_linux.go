//go:build linux

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// epollSelector is the Linux Selector backed by epoll. A socket is never
// registered for both readable and writable at once in this reactor, so
// AddWritable simply replaces the fd's event mask via EPOLL_CTL_MOD.
type epollSelector struct {
	epfd      int
	readable  map[int]bool
	events    []unix.EpollEvent
}

// NewSelector creates the platform-native selector.
func NewSelector() (Selector, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	return &epollSelector{
		epfd:     epfd,
		readable: make(map[int]bool),
		events:   make([]unix.EpollEvent, 64),
	}, nil
}

func (s *epollSelector) AddReadable(fd int) error {
	return s.add(fd, unix.EPOLLIN, true)
}

func (s *epollSelector) AddWritable(fd int) error {
	return s.add(fd, unix.EPOLLOUT, false)
}

func (s *epollSelector) add(fd int, mask uint32, readable bool) error {
	ev := &unix.EpollEvent{Events: mask, Fd: int32(fd)}
	op := unix.EPOLL_CTL_ADD
	if _, known := s.readableOrWritable(fd); known {
		op = unix.EPOLL_CTL_MOD
	}
	if err := unix.EpollCtl(s.epfd, op, fd, ev); err != nil {
		return fmt.Errorf("epoll_ctl fd=%d: %w", fd, err)
	}
	s.readable[fd] = readable
	return nil
}

func (s *epollSelector) readableOrWritable(fd int) (bool, bool) {
	r, ok := s.readable[fd]
	return r, ok
}

func (s *epollSelector) Remove(fd int) error {
	if _, ok := s.readable[fd]; !ok {
		return nil
	}
	delete(s.readable, fd)
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll_ctl del fd=%d: %w", fd, err)
	}
	return nil
}

func (s *epollSelector) Wait(timeoutMs int, onReadable, onWritable func(fd int)) error {
	n, err := unix.EpollWait(s.epfd, s.events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("epoll_wait: %w", err)
	}
	for i := 0; i < n; i++ {
		fd := int(s.events[i].Fd)
		ev := s.events[i].Events
		switch {
		case ev&(unix.EPOLLIN|unix.EPOLLERR|unix.EPOLLHUP) != 0 && s.readable[fd]:
			onReadable(fd)
		case ev&(unix.EPOLLOUT|unix.EPOLLERR|unix.EPOLLHUP) != 0:
			onWritable(fd)
		}
	}
	return nil
}

func (s *epollSelector) Close() error {
	return unix.Close(s.epfd)
}
