package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/pixil98/go-tinymud/internal/game"
	"github.com/pixil98/go-tinymud/internal/storage"
)

type options struct {
	storage string
	path    string
}

// console is what an action can use besides the store.
type console struct {
	out    io.Writer
	prompt *prompter
}

// action runs one subcommand against an open store. The last optional
// arguments may be left off.
type action struct {
	args     []string
	optional int
	usage    string
	run      func(store storage.PlayerStore, con console, args []string) error
}

var actions = map[string]action{
	"show": {
		args:  []string{"name"},
		usage: "print a player record",
		run:   show,
	},
	"setflag": {
		args:  []string{"name", "flag"},
		usage: "set a flag on a player",
		run:   setFlag,
	},
	"clearflag": {
		args:  []string{"name", "flag"},
		usage: "clear a flag from a player",
		run:   clearFlag,
	},
	"passwd": {
		args:     []string{"name", "password"},
		optional: 1,
		usage:    "change a player's password, prompting if it is not given",
		run:      passwd,
	},
}

func run(args []string, in io.Reader, out io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("mudadmin", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&opts.storage, "storage", "s", "flat", "Player storage type (flat or bolt)")
	fs.StringVarP(&opts.path, "path", "p", "./players", "Player directory (flat) or database file (bolt)")

	var showHelp bool
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.Usage = func() { printUsage(fs, out) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if showHelp || fs.NArg() == 0 {
		printUsage(fs, out)
		return nil
	}

	name := fs.Arg(0)
	a, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	rest := fs.Args()[1:]
	if len(rest) > len(a.args) || len(rest) < len(a.args)-a.optional {
		return fmt.Errorf("usage: mudadmin %s <%s>", name, strings.Join(a.args, "> <"))
	}

	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return a.run(store, console{out: out, prompt: newPrompter(in, out)}, rest)
}

func openStore(opts options) (storage.PlayerStore, error) {
	switch opts.storage {
	case "flat":
		return storage.NewFileStore(opts.path)
	case "bolt":
		return storage.OpenBoltStore(opts.path)
	default:
		return nil, fmt.Errorf("unknown storage type %q", opts.storage)
	}
}

func printUsage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, "Usage: mudadmin [flags] <command> [args]\n\nCommands:\n")
	for _, name := range []string{"show", "setflag", "clearflag", "passwd"} {
		a := actions[name]
		fmt.Fprintf(out, "  %-10s <%s>  %s\n", name, strings.Join(a.args, "> <"), a.usage)
	}
	fmt.Fprintf(out, "\nFlags:\n%s", fs.FlagUsages())
}

func show(store storage.PlayerStore, con console, args []string) error {
	p, err := store.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	fmt.Fprintf(con.out, "name:  %s\nroom:  %d\nflags: %s\n", p.Name, p.Room, p.Flags.String())
	return nil
}

// checkFlag applies the in-game rule for flag names.
func checkFlag(flag string) error {
	if !game.ValidName(flag) {
		return fmt.Errorf("flag name %q not valid", flag)
	}
	return nil
}

func setFlag(store storage.PlayerStore, con console, args []string) error {
	if err := checkFlag(args[1]); err != nil {
		return err
	}
	return update(store, con.out, args[0], func(p *game.Player) error {
		return p.SetFlag(args[1])
	})
}

func clearFlag(store storage.PlayerStore, con console, args []string) error {
	if err := checkFlag(args[1]); err != nil {
		return err
	}
	return update(store, con.out, args[0], func(p *game.Player) error {
		return p.ClearFlag(args[1])
	})
}

func passwd(store storage.PlayerStore, con console, args []string) error {
	if exists, err := store.Exists(args[0]); err != nil {
		return fmt.Errorf("looking up %s: %w", args[0], err)
	} else if !exists {
		return fmt.Errorf("loading %s: %w", args[0], storage.ErrNotFound)
	}

	var password string
	if len(args) > 1 {
		password = args[1]
		if ok, _ := validPassword(password); !ok {
			return fmt.Errorf("password must be a single word")
		}
	} else {
		var err error
		if password, err = con.prompt.newPassword(); err != nil {
			return err
		}
	}

	return update(store, con.out, args[0], func(p *game.Player) error {
		p.Password = password
		return nil
	})
}

// update loads a player, applies fn and saves the result.
func update(store storage.PlayerStore, out io.Writer, name string, fn func(*game.Player) error) error {
	p, err := store.Load(name)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		return fmt.Errorf("saving %s: %w", p.Name, err)
	}
	fmt.Fprintf(out, "%s updated.\n", p.Name)
	return nil
}
