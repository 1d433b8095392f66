// Package sessiontest provides an in-memory connection for driving sessions
// in tests.
package sessiontest

import (
	"bytes"
	"io"

	"github.com/pixil98/go-tinymud/internal/netio"
)

// Conn is a fake non-blocking socket. Queued input is returned one chunk per
// Read; an empty queue reads as would-block, or as EOF once Hangup is called.
type Conn struct {
	fd      int
	input   [][]byte
	hungUp  bool
	written bytes.Buffer
	closed  bool

	// WriteLimit caps bytes accepted per Write when positive.
	WriteLimit int
	// Blocked makes every Write report would-block.
	Blocked bool
	// WriteErr is returned by Write when set.
	WriteErr error
}

var nextFd = 1000

// NewConn returns a fake connection with a unique descriptor number.
func NewConn() *Conn {
	nextFd++
	return &Conn{fd: nextFd}
}

// Input queues data to be returned by a later Read.
func (c *Conn) Input(data string) {
	c.input = append(c.input, []byte(data))
}

// Hangup makes reads report EOF once queued input is consumed.
func (c *Conn) Hangup() {
	c.hungUp = true
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	return c.written.String()
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) Read(p []byte) (int, error) {
	if len(c.input) == 0 {
		if c.hungUp {
			return 0, io.EOF
		}
		return 0, netio.ErrWouldBlock
	}
	n := copy(p, c.input[0])
	c.input[0] = c.input[0][n:]
	if len(c.input[0]) == 0 {
		c.input = c.input[1:]
	}
	return n, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	if c.WriteErr != nil {
		return 0, c.WriteErr
	}
	if c.Blocked {
		return 0, netio.ErrWouldBlock
	}
	if c.WriteLimit > 0 && len(p) > c.WriteLimit {
		p = p[:c.WriteLimit]
	}
	return c.written.Write(p)
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) Fd() int {
	return c.fd
}
