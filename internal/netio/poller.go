package netio

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Readiness is what a descriptor was found ready for.
type Readiness struct {
	Read   bool
	Write  bool
	Except bool
}

// Poller collects descriptors of interest and waits for any of them to become
// ready. It is rebuilt every loop iteration: Reset, Add, Wait, then Ready.
type Poller struct {
	fds   []unix.PollFd
	index map[int]int
}

func NewPoller() *Poller {
	return &Poller{index: make(map[int]int)}
}

// Reset forgets all registered descriptors.
func (p *Poller) Reset() {
	p.fds = p.fds[:0]
	clear(p.index)
}

// Add registers fd for exceptional conditions, for reading if read is set and
// for writing if write is set. Registering the same fd again merges interest.
func (p *Poller) Add(fd int, read bool, write bool) {
	events := int16(unix.POLLPRI)
	if read {
		events |= unix.POLLIN
	}
	if write {
		events |= unix.POLLOUT
	}

	if i, ok := p.index[fd]; ok {
		p.fds[i].Events |= events
		return
	}
	p.index[fd] = len(p.fds)
	p.fds = append(p.fds, unix.PollFd{Fd: int32(fd), Events: events})
}

// Len returns the number of registered descriptors.
func (p *Poller) Len() int {
	return len(p.fds)
}

// Wait blocks for at most timeout and returns how many descriptors are ready.
// An interrupted wait reports zero ready descriptors.
func (p *Poller) Wait(timeout time.Duration) (int, error) {
	for i := range p.fds {
		p.fds[i].Revents = 0
	}

	n, err := unix.Poll(p.fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("poll: %w", err)
	}
	return n, nil
}

// Ready reports the readiness of fd from the last Wait.
func (p *Poller) Ready(fd int) Readiness {
	i, ok := p.index[fd]
	if !ok {
		return Readiness{}
	}
	ev := p.fds[i].Revents
	want := p.fds[i].Events

	var r Readiness
	// hangups and errors surface as readable so the read reports them
	if want&unix.POLLIN != 0 && ev&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
		r.Read = true
	}
	if ev&unix.POLLOUT != 0 {
		r.Write = true
	}
	if ev&unix.POLLPRI != 0 {
		r.Except = true
	}
	return r
}
