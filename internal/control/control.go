// Package control loads the server control file: the movement directions,
// names new characters may not use and remote addresses that are refused.
package control

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pixil98/go-tinymud/internal/game"
)

// Control holds the three token sets from the control file.
type Control struct {
	Directions       game.NameSet
	ReservedNames    game.NameSet
	BlockedAddresses map[string]struct{}
}

// New returns an empty Control.
func New() *Control {
	return &Control{
		Directions:       game.NameSet{},
		ReservedNames:    game.NameSet{},
		BlockedAddresses: map[string]struct{}{},
	}
}

// LoadFile reads a control file from path.
func LoadFile(path string) (*Control, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening control file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load reads the control data: line one holds the directions, line two the
// reserved names and line three the blocked addresses. Missing lines leave
// the matching set empty.
func Load(r io.Reader) (*Control, error) {
	c := New()

	sc := bufio.NewScanner(r)
	lines := make([]string, 0, 3)
	for len(lines) < 3 && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading control data: %w", err)
	}
	for len(lines) < 3 {
		lines = append(lines, "")
	}

	for _, d := range strings.Fields(lines[0]) {
		c.Directions.Add(d)
	}
	for _, n := range strings.Fields(lines[1]) {
		c.ReservedNames.Add(n)
	}
	for _, a := range strings.Fields(lines[2]) {
		c.BlockedAddresses[a] = struct{}{}
	}

	return c, nil
}

// IsDirection reports whether verb names a movement direction.
func (c *Control) IsDirection(verb string) bool {
	return c.Directions.Has(verb)
}

// IsReserved reports whether name may not be used for a new character.
func (c *Control) IsReserved(name string) bool {
	return c.ReservedNames.Has(name)
}

// IsBlocked reports whether connections from address are refused. Addresses
// are compared exactly.
func (c *Control) IsBlocked(address string) bool {
	_, ok := c.BlockedAddresses[address]
	return ok
}
