package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/metrics"
	"github.com/pixil98/go-tinymud/internal/netio"
	"github.com/pixil98/go-tinymud/internal/player"
	"github.com/pixil98/go-tinymud/internal/session"
	"github.com/pixil98/go-tinymud/internal/storage"
)

const (
	DefaultTickLength  = time.Second * 60
	DefaultPollTimeout = time.Millisecond * 500
	DefaultPort        = 4000

	ShutdownMessage = "\n\n** Game shut down. **\n\n"
)

// Manager does periodic work that does not depend on player input.
type Manager interface {
	Tick(context.Context) error
}

// Service is a helper that runs for as long as the driver does. Start must
// block until its context is cancelled.
type Service interface {
	Start(context.Context) error
}

// MudDriver runs the main loop: periodic ticks, reaping closed sessions,
// waiting for socket readiness, accepting connections and servicing input
// and output. Everything it touches is owned by the loop goroutine.
type MudDriver struct {
	env      *commands.Env
	players  *player.PlayerManager
	managers []Manager
	services map[string]Service
	metrics  *metrics.Metrics

	tickLength  time.Duration
	pollTimeout time.Duration
	address     string
	port        int

	listener *netio.Listener
	poller   *netio.Poller
	lastTick time.Time
}

func NewMudDriver(env *commands.Env, players *player.PlayerManager, managers []Manager, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		env:         env,
		players:     players,
		managers:    managers,
		services:    map[string]Service{},
		tickLength:  DefaultTickLength,
		pollTimeout: DefaultPollTimeout,
		port:        DefaultPort,
		poller:      netio.NewPoller(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.metrics == nil {
		d.metrics = metrics.New()
	}

	return d
}

// Listen opens the listening socket. Start calls it if it has not been
// called already.
func (d *MudDriver) Listen() error {
	if d.listener != nil {
		return nil
	}
	l, err := netio.Listen(d.address, d.port)
	if err != nil {
		return fmt.Errorf("initialising comms: %w", err)
	}
	d.listener = l
	return nil
}

// Port returns the port being listened on.
func (d *MudDriver) Port() (int, error) {
	if d.listener == nil {
		return 0, fmt.Errorf("not listening")
	}
	return d.listener.Port()
}

func (d *MudDriver) Start(ctx context.Context) error {
	if err := d.Listen(); err != nil {
		d.closeStore(ctx)
		return err
	}
	defer func() {
		if err := d.listener.Close(); err != nil {
			slog.WarnContext(ctx, "closing listener", "error", err)
		}
	}()

	// services live exactly as long as the loop
	svcCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	d.startServices(svcCtx, &wg)
	defer func() {
		cancel()
		wg.Wait()
	}()

	port, err := d.listener.Port()
	if err != nil {
		slog.WarnContext(ctx, "reading listener port", "error", err)
	}
	slog.InfoContext(ctx, "accepting connections", "port", port, "version", d.env.Settings.Version)
	d.metrics.SetRooms(d.env.World.Len())

	d.lastTick = time.Now()
	for !d.env.Stopped() && ctx.Err() == nil {
		if err := d.step(ctx); err != nil {
			d.shutdown(ctx)
			return err
		}
	}

	d.shutdown(ctx)
	return nil
}

func (d *MudDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// step runs one iteration of the main loop.
func (d *MudDriver) step(ctx context.Context) error {
	d.metrics.LoopIteration()

	if time.Since(d.lastTick) >= d.tickLength {
		d.lastTick = time.Now()
		if err := d.Tick(ctx); err != nil {
			return fmt.Errorf("periodic update: %w", err)
		}
	}

	d.reap(ctx)

	sessions := d.env.Sessions.Snapshot()

	d.poller.Reset()
	d.poller.Add(d.listener.Fd(), true, false)
	for _, s := range sessions {
		d.poller.Add(s.Fd(), !s.Closing(), s.PendingOutput())
	}

	n, err := d.poller.Wait(d.pollTimeout)
	if err != nil {
		return err
	}
	if n > 0 {
		if d.poller.Ready(d.listener.Fd()).Read {
			d.acceptAll(ctx)
		}
		for _, s := range sessions {
			d.service(ctx, s)
		}
	}

	d.metrics.SetSessions(d.env.Sessions.CountByState())
	return nil
}

// reap destroys closed sessions, saving the players that were in the game.
func (d *MudDriver) reap(ctx context.Context) {
	d.env.Sessions.Reap(func(s *session.Session) {
		d.release(ctx, s)
	})
}

func (d *MudDriver) release(ctx context.Context, s *session.Session) {
	if s.State == session.Playing && s.Player != nil {
		storage.SaveQuietly(d.env.Players, s.Player)
	}
	slog.DebugContext(ctx, "session removed", "session", s)
}

// acceptAll accepts every pending connection.
func (d *MudDriver) acceptAll(ctx context.Context) {
	for {
		sock, err := d.listener.Accept()
		if errors.Is(err, netio.ErrWouldBlock) {
			return
		}
		if err != nil {
			slog.ErrorContext(ctx, "accepting connection", "error", err)
			return
		}

		addr := sock.RemoteAddr()
		if d.env.Control.IsBlocked(addr) {
			slog.WarnContext(ctx, "rejected connection", "address", addr)
			if err := sock.Close(); err != nil {
				slog.WarnContext(ctx, "closing rejected connection", "address", addr, "error", err)
			}
			d.metrics.ConnectionRejected()
			d.env.Publish(ctx, game.Event{Kind: game.EventRejected, Address: addr})
			continue
		}

		s := session.New(sock, addr)
		d.env.Sessions.Add(s)
		d.metrics.ConnectionAccepted()
		slog.InfoContext(ctx, "new player accepted", "session", s, "port", sock.RemotePort())

		d.players.Connect(ctx, s)
	}
}

// service handles exceptions, then input, then output for one session.
func (d *MudDriver) service(ctx context.Context, s *session.Session) {
	if !s.Connected() {
		return
	}
	r := d.poller.Ready(s.Fd())

	if r.Except {
		slog.WarnContext(ctx, "exception on socket", "session", s)
	}

	if r.Read && s.Connected() {
		d.read(ctx, s)
	}

	// a session closed while reading is flushed when it is reaped
	if r.Write && s.Connected() && !s.Closing() {
		d.write(ctx, s)
	}
}

func (d *MudDriver) read(ctx context.Context, s *session.Session) {
	lines, n, err := s.ReadLines()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			slog.WarnContext(ctx, "reading from player", "session", s, "error", err)
		}
		slog.InfoContext(ctx, "connection closed", "session", s)
		d.players.Disconnect(ctx, s)
		return
	}
	d.metrics.BytesRead(n)

	for _, line := range lines {
		// input after quit is discarded
		if s.Closing() {
			break
		}
		d.metrics.LineProcessed()
		d.players.HandleLine(ctx, s, line)
	}
}

func (d *MudDriver) write(ctx context.Context, s *session.Session) {
	n, err := s.Flush()
	d.metrics.BytesWritten(n)
	if err != nil {
		slog.WarnContext(ctx, "sending to player", "session", s, "error", err)
	}
}

// shutdown tells everyone the game is over, closes every session and then
// the player store.
func (d *MudDriver) shutdown(ctx context.Context) {
	d.env.Sessions.Broadcast(ShutdownMessage)
	d.env.Sessions.CloseAll(func(s *session.Session) {
		d.release(ctx, s)
	})
	d.closeStore(ctx)
	slog.InfoContext(ctx, "game shut down")
}

func (d *MudDriver) closeStore(ctx context.Context) {
	if err := d.env.Players.Close(); err != nil {
		slog.ErrorContext(ctx, "closing player store", "error", err)
	}
}

func (d *MudDriver) startServices(ctx context.Context, wg *sync.WaitGroup) {
	for name, svc := range d.services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Start(ctx); err != nil {
				slog.ErrorContext(ctx, "service stopped", "service", name, "error", err)
			}
		}()
	}
}
