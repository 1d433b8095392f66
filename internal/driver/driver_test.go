package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/control"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messages"
	"github.com/pixil98/go-tinymud/internal/player"
	"github.com/pixil98/go-tinymud/internal/session"
	"github.com/pixil98/go-tinymud/internal/session/sessiontest"
	"github.com/pixil98/go-tinymud/internal/storage"
)

func newTestEnv(t *testing.T) *commands.Env {
	t.Helper()

	w := game.NewWorld()
	if err := w.Add(game.NewRoom(1000, "The void.\n")); err != nil {
		t.Fatalf("adding room: %v", err)
	}

	msgs := messages.New()
	msgs.Set(messages.Welcome, "Hello stranger.%r")

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	return &commands.Env{
		World:    w,
		Sessions: session.NewRegistry(),
		Messages: msgs,
		Control:  control.New(),
		Players:  store,
		Events:   game.NopPublisher{},
		Settings: commands.DefaultSettings(),
	}
}

type countingManager struct {
	ticks atomic.Int32
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return nil
}

type failingManager struct{}

func (failingManager) Tick(context.Context) error {
	return errors.New("boom")
}

// startDriver runs the driver on a loopback port and returns the port and a
// channel that receives Start's result.
func startDriver(t *testing.T, ctx context.Context, env *commands.Env, managers []Manager, opts ...MudDriverOpt) (int, <-chan error) {
	t.Helper()

	opts = append([]MudDriverOpt{
		WithListenAddress("127.0.0.1", 0),
		WithPollTimeout(10 * time.Millisecond),
	}, opts...)
	d := NewMudDriver(env, player.NewPlayerManager(commands.NewHandler(env)), managers, opts...)

	if err := d.Listen(); err != nil {
		t.Fatalf("listening: %v", err)
	}
	port, err := d.Port()
	if err != nil {
		t.Fatalf("getting port: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- d.Start(ctx)
	}()
	return port, done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop")
		return nil
	}
}

func expectStopped(t *testing.T, done <-chan error) {
	t.Helper()
	if err := waitDone(t, done); err != nil {
		t.Fatalf("driver stopped with error: %v", err)
	}
}

func dial(t *testing.T, port int) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		t.Fatalf("setting deadline: %v", err)
	}
	return conn
}

func TestMudDriver_Shutdown(t *testing.T) {
	env := newTestEnv(t)
	admin := game.NewPlayer("Admin", 1000)
	admin.Password = "pw"
	admin.Flags.Add(game.FlagCanShutdown)
	if err := env.Players.Save(admin); err != nil {
		t.Fatalf("saving admin: %v", err)
	}

	port, done := startDriver(t, context.Background(), env, nil)

	conn := dial(t, port)
	if _, err := io.WriteString(conn, "Admin\npw\nshutdown\n"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	expectStopped(t, done)

	got := string(out)
	testutil.AssertEqual(t, "banner", strings.HasPrefix(got, "\nWelcome to the Tiny MUD Server version 2.0.0\nHello stranger.\n"), true)
	testutil.AssertEqual(t, "announcement", strings.Contains(got, "Admin shuts down the game\n"), true)
	testutil.AssertEqual(t, "farewell", strings.HasSuffix(got, ShutdownMessage), true)
	testutil.AssertEqual(t, "sessions left", env.Sessions.Len(), 0)
}

func TestMudDriver_NewCharacterSaved(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port, done := startDriver(t, ctx, env, nil)

	conn := dial(t, port)
	if _, err := io.WriteString(conn, "new\nBob\nsecret\nsecret\nquit\n"); err != nil {
		t.Fatalf("writing: %v", err)
	}
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	cancel()
	expectStopped(t, done)

	testutil.AssertEqual(t, "entered game", strings.Contains(string(out), "Welcome, Bob\n"), true)

	p, err := env.Players.Load("bob")
	if err != nil {
		t.Fatalf("loading bob: %v", err)
	}
	testutil.AssertEqual(t, "password", p.Password, "secret")
	testutil.AssertEqual(t, "room", p.Room, 1000)
}

func TestMudDriver_ContextCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	port, done := startDriver(t, ctx, env, nil)
	conn := dial(t, port)

	buf := make([]byte, len("\nWelcome"))
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("reading banner: %v", err)
	}

	cancel()
	expectStopped(t, done)

	// connections still logging in are closed without the broadcast
	rest, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	testutil.AssertEqual(t, "shutdown broadcast", strings.Contains(string(rest), ShutdownMessage), false)
}

func TestMudDriver_RejectsBlockedAddress(t *testing.T) {
	env := newTestEnv(t)
	env.Control.BlockedAddresses["127.0.0.1"] = struct{}{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port, done := startDriver(t, ctx, env, nil)

	conn := dial(t, port)
	out, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	testutil.AssertEqual(t, "output", string(out), "")

	cancel()
	expectStopped(t, done)
}

func TestMudDriver_Tick(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &countingManager{}
	_, done := startDriver(t, ctx, env, []Manager{m}, WithTickLength(time.Millisecond))

	deadline := time.Now().Add(5 * time.Second)
	for m.ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	expectStopped(t, done)
	testutil.AssertEqual(t, "ticked", m.ticks.Load() >= 2, true)
}

func TestMudDriver_TickError(t *testing.T) {
	env := newTestEnv(t)

	_, done := startDriver(t, context.Background(), env, []Manager{failingManager{}}, WithTickLength(time.Millisecond))

	testutil.AssertErrorContains(t, waitDone(t, done), "periodic update")
}

type closeCountingStore struct {
	storage.PlayerStore
	closed int
}

func (s *closeCountingStore) Close() error {
	s.closed++
	return s.PlayerStore.Close()
}

func TestMudDriver_ListenFailure(t *testing.T) {
	env := newTestEnv(t)
	store := &closeCountingStore{PlayerStore: env.Players}
	env.Players = store

	busy, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("occupying a port: %v", err)
	}
	defer func() { _ = busy.Close() }()
	port := busy.Addr().(*net.TCPAddr).Port

	d := NewMudDriver(env, player.NewPlayerManager(commands.NewHandler(env)), nil,
		WithListenAddress("127.0.0.1", port))

	err = d.Start(context.Background())
	testutil.AssertErrorContains(t, err, "initialising comms")
	testutil.AssertEqual(t, "store closed", store.closed, 1)
}

func TestMudDriver_ClosesStoreOnShutdown(t *testing.T) {
	env := newTestEnv(t)
	store := &closeCountingStore{PlayerStore: env.Players}
	env.Players = store
	ctx, cancel := context.WithCancel(context.Background())

	_, done := startDriver(t, ctx, env, nil)
	cancel()
	expectStopped(t, done)

	testutil.AssertEqual(t, "store closed", store.closed, 1)
}

type blockingService struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (s *blockingService) Start(ctx context.Context) error {
	s.started.Store(true)
	<-ctx.Done()
	s.stopped.Store(true)
	return nil
}

func TestMudDriver_Services(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	svc := &blockingService{}
	_, done := startDriver(t, ctx, env, nil, WithService("test", svc))

	deadline := time.Now().Add(5 * time.Second)
	for !svc.started.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	expectStopped(t, done)
	testutil.AssertEqual(t, "started", svc.started.Load(), true)
	testutil.AssertEqual(t, "stopped", svc.stopped.Load(), true)
}

func TestAmbientManager_Tick(t *testing.T) {
	tests := map[string]struct {
		message string
		exp     string
	}{
		"broadcasts to players": {
			message: DefaultAmbientMessage,
			exp:     "You hear creepy noises ...\n",
		},
		"empty message is silent": {
			message: "",
			exp:     "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			reg := session.NewRegistry()

			playing := session.New(sessiontest.NewConn(), "10.0.0.1")
			playing.Player = game.NewPlayer("Alice", 1000)
			playing.State = session.Playing
			reg.Add(playing)

			lobby := session.New(sessiontest.NewConn(), "10.0.0.2")
			reg.Add(lobby)

			if err := NewAmbientManager(reg, tt.message).Tick(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "player output", playing.Output(), tt.exp)
			testutil.AssertEqual(t, "lobby output", lobby.Output(), "")
		})
	}
}
