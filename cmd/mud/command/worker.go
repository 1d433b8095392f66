package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/pixil98/go-tinymud/internal/commands"
	"github.com/pixil98/go-tinymud/internal/driver"
	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/messaging"
	"github.com/pixil98/go-tinymud/internal/metrics"
	"github.com/pixil98/go-tinymud/internal/player"
	"github.com/pixil98/go-tinymud/internal/session"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	drv, err := cfg.buildDriver(context.Background())
	if err != nil {
		return nil, err
	}

	return service.WorkerList{
		"driver": drv,
	}, nil
}

func (cfg *Config) buildDriver(ctx context.Context) (*driver.MudDriver, error) {
	// control first: the rooms loader needs the directions
	ctl := cfg.Files.loadControl(ctx)
	msgs := cfg.Files.loadMessages(ctx)
	world := cfg.Files.loadWorld(ctx, ctl.Directions)

	store, err := cfg.Storage.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("opening player store: %w", err)
	}

	opts, err := cfg.driverOpts()
	if err != nil {
		return nil, err
	}

	var events game.Publisher = game.NopPublisher{}
	if cfg.Events.Enabled {
		bus, err := cfg.Events.buildBus()
		if err != nil {
			return nil, fmt.Errorf("creating event bus: %w", err)
		}
		events = messaging.NewEventPublisher(bus, cfg.Events.subjectPrefix())
		opts = append(opts, driver.WithService("events", bus))
	}

	m := metrics.New()
	opts = append(opts, driver.WithMetrics(m))
	if cfg.Metrics.Enabled {
		opts = append(opts, driver.WithService("metrics", metrics.NewServer(m, cfg.Metrics.address())))
	}

	env := &commands.Env{
		World:    world,
		Sessions: session.NewRegistry(),
		Messages: msgs,
		Control:  ctl,
		Players:  store,
		Events:   events,
		Settings: cfg.Game.Settings(),
	}

	players := player.NewPlayerManager(commands.NewHandler(env))
	managers := []driver.Manager{
		driver.NewAmbientManager(env.Sessions, cfg.ambientMessage()),
	}

	return driver.NewMudDriver(env, players, managers, opts...), nil
}
