package netio

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"
)

// Listener is a non-blocking IPv4 TCP listening socket.
type Listener struct {
	fd int
}

// Listen creates, binds and listens on address:port. An empty address
// listens on all interfaces. Port 0 picks an ephemeral port.
func Listen(address string, port int) (*Listener, error) {
	sa := &unix.SockaddrInet4{Port: port}
	if address != "" {
		ip := net.ParseIP(address).To4()
		if ip == nil {
			return nil, fmt.Errorf("invalid IPv4 listen address %q", address)
		}
		copy(sa.Addr[:], ip)
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("creating control socket: %w", err)
	}

	l := &Listener{fd: fd}
	if err := l.setup(sa); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return l, nil
}

func (l *Listener) setup(sa *unix.SockaddrInet4) error {
	if err := unix.SetNonblock(l.fd, true); err != nil {
		return fmt.Errorf("setting control socket non-blocking: %w", err)
	}
	if err := unix.SetsockoptLinger(l.fd, unix.SOL_SOCKET, unix.SO_LINGER, &unix.Linger{}); err != nil {
		return fmt.Errorf("setsockopt SO_LINGER: %w", err)
	}
	if err := unix.SetsockoptInt(l.fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.Bind(l.fd, sa); err != nil {
		return fmt.Errorf("binding %s: %w", net.JoinHostPort(net.IP(sa.Addr[:]).String(), strconv.Itoa(sa.Port)), err)
	}
	if err := unix.Listen(l.fd, unix.SOMAXCONN); err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	return nil
}

// Fd returns the listening descriptor for readiness polling.
func (l *Listener) Fd() int {
	return l.fd
}

// Port returns the bound port.
func (l *Listener) Port() (int, error) {
	sa, err := unix.Getsockname(l.fd)
	if err != nil {
		return 0, fmt.Errorf("getsockname: %w", err)
	}
	in4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return 0, fmt.Errorf("unexpected socket address type %T", sa)
	}
	return in4.Port, nil
}

// Accept returns the next pending connection as a non-blocking Socket. When
// no connection is pending it returns ErrWouldBlock.
func (l *Listener) Accept() (*Socket, error) {
	fd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		if isWouldBlock(err) {
			return nil, ErrWouldBlock
		}
		return nil, fmt.Errorf("accept: %w", err)
	}

	s := &Socket{fd: fd}
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		s.address = net.IP(in4.Addr[:]).String()
		s.port = in4.Port
	}
	return s, nil
}

func (l *Listener) Close() error {
	if l.fd < 0 {
		return nil
	}
	err := unix.Close(l.fd)
	l.fd = -1
	return err
}
