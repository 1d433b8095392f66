package netio

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by non-blocking operations that could not make
// progress without waiting.
var ErrWouldBlock = errors.New("operation would block")

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}
