package netio

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Socket is an accepted non-blocking client connection.
type Socket struct {
	fd      int
	address string
	port    int
}

func (s *Socket) Fd() int {
	return s.fd
}

// RemoteAddr returns the peer's dotted IPv4 address.
func (s *Socket) RemoteAddr() string {
	return s.address
}

// RemotePort returns the peer's source port.
func (s *Socket) RemotePort() int {
	return s.port
}

// Read reads whatever is available. It returns ErrWouldBlock when nothing is,
// and io.EOF once the peer has closed its side.
func (s *Socket) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err != nil {
		if isWouldBlock(err) {
			return 0, ErrWouldBlock
		}
		return 0, fmt.Errorf("read from player: %w", err)
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write sends as much of p as the socket will take without blocking. A
// closed peer yields an error rather than SIGPIPE.
func (s *Socket) Write(p []byte) (int, error) {
	n, err := unix.SendmsgN(s.fd, p, nil, nil, unix.MSG_NOSIGNAL)
	if err != nil {
		if isWouldBlock(err) {
			return 0, ErrWouldBlock
		}
		return 0, fmt.Errorf("send to player: %w", err)
	}
	return n, nil
}

func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
