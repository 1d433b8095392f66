package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/netio"
)

const (
	// InitialPrompt is shown to a session that has not yet given a name.
	InitialPrompt = "Enter your name, or 'new' to create a new character ...  "

	readSize   = 1000
	writeChunk = 512
)

// Conn is the socket a Session talks through. Reads and writes must not
// block; netio.ErrWouldBlock reports that no progress was possible.
type Conn interface {
	io.ReadWriteCloser
	Fd() int
}

// Session is one connected client.
type Session struct {
	id      uuid.UUID
	conn    Conn
	address string
	dead    bool
	closing bool

	inbuf  []byte
	outbuf []byte

	State        State
	Prompt       string
	Player       *game.Player
	BadPasswords int
}

// New creates a session for conn in the initial login state.
func New(conn Conn, address string) *Session {
	return &Session{
		id:      uuid.New(),
		conn:    conn,
		address: address,
		State:   AwaitingName,
		Prompt:  InitialPrompt,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Address is the remote IP address.
func (s *Session) Address() string {
	return s.address
}

func (s *Session) Fd() int {
	return s.conn.Fd()
}

// Name returns the bound player's name, or "" before one is chosen.
func (s *Session) Name() string {
	if s.Player == nil {
		return ""
	}
	return s.Player.Name
}

// Room returns the bound player's room, or 0 before one is chosen.
func (s *Session) Room() int {
	if s.Player == nil {
		return 0
	}
	return s.Player.Room
}

// Reset returns the session to the initial login state, dropping any
// partially established identity.
func (s *Session) Reset() {
	s.State = AwaitingName
	s.Prompt = InitialPrompt
	s.Player = nil
	s.BadPasswords = 0
}

// Connected reports whether the socket is still usable.
func (s *Session) Connected() bool {
	return !s.dead
}

// IsPlaying reports whether the session is in the game and able to receive
// broadcasts.
func (s *Session) IsPlaying() bool {
	return s.Connected() && s.State == Playing && !s.closing
}

// Close marks the session for removal on the next reap.
func (s *Session) Close() {
	s.closing = true
}

func (s *Session) Closing() bool {
	return s.closing
}

// Write queues p for delivery. It never fails.
func (s *Session) Write(p []byte) (int, error) {
	s.outbuf = append(s.outbuf, p...)
	return len(p), nil
}

// Send queues text for delivery.
func (s *Session) Send(text string) {
	s.outbuf = append(s.outbuf, text...)
}

func (s *Session) Sendf(format string, args ...any) {
	s.outbuf = fmt.Appendf(s.outbuf, format, args...)
}

// PendingOutput reports whether queued output is waiting to be written.
func (s *Session) PendingOutput() bool {
	return len(s.outbuf) > 0
}

// Output returns the queued, unwritten output.
func (s *Session) Output() string {
	return string(s.outbuf)
}

// ReadLines performs one bounded read and returns the complete lines now
// available, trimmed of surrounding white space, along with the number of
// bytes read. A would-block read returns nothing. When the peer has gone the
// session is marked dead and the read error is returned.
func (s *Session) ReadLines() ([]string, int, error) {
	if s.closing || s.dead {
		return nil, 0, nil
	}

	buf := make([]byte, readSize)
	n, err := s.conn.Read(buf)
	if errors.Is(err, netio.ErrWouldBlock) {
		return nil, 0, nil
	}
	if err != nil || n == 0 {
		s.markDead()
		if err == nil {
			err = io.EOF
		}
		return nil, 0, err
	}
	s.inbuf = append(s.inbuf, buf[:n]...)

	var lines []string
	for {
		i := bytes.IndexByte(s.inbuf, '\n')
		if i < 0 {
			break
		}
		lines = append(lines, strings.TrimSpace(string(s.inbuf[:i])))
		s.inbuf = s.inbuf[i+1:]
	}
	return lines, n, nil
}

// Flush writes queued output in bounded chunks until it is drained, the
// socket would block, or a write comes up short. Bytes written are removed
// from the queue; the rest waits for the next writable tick.
func (s *Session) Flush() (int, error) {
	total := 0
	for !s.dead && len(s.outbuf) > 0 {
		chunk := min(len(s.outbuf), writeChunk)

		n, err := s.conn.Write(s.outbuf[:chunk])
		if errors.Is(err, netio.ErrWouldBlock) {
			return total, nil
		}
		if err != nil {
			return total, err
		}

		s.outbuf = s.outbuf[n:]
		total += n
		if n < chunk {
			break
		}
	}
	return total, nil
}

func (s *Session) markDead() {
	if s.dead {
		return
	}
	s.dead = true
	if err := s.conn.Close(); err != nil {
		slog.Warn("closing connection", "session", s, "error", err)
	}
}

// destroy flushes what it can and releases the socket.
func (s *Session) destroy() {
	if !s.dead {
		if _, err := s.Flush(); err != nil {
			slog.Warn("flushing output on close", "session", s, "error", err)
		}
	}
	s.markDead()
}

// LogValue implements slog.LogValuer.
func (s *Session) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", s.id.String()),
		slog.String("address", s.address),
		slog.String("state", s.State.String()),
	}
	if s.Player != nil {
		attrs = append(attrs, slog.String("player", s.Player.Name))
	}
	return slog.GroupValue(attrs...)
}
