package game

import "fmt"

// Well known player flags.
const (
	FlagBlocked     = "blocked"
	FlagGagged      = "gagged"
	FlagCanSetFlag  = "can_setflag"
	FlagCanShutdown = "can_shutdown"
	FlagCanGoto     = "can_goto"
	FlagCanTransfer = "can_transfer"
)

// Player is the persisted record for a character.
type Player struct {
	// Name is the display form of the name; it never changes once chosen.
	Name     string
	Password string
	Room     int
	Flags    NameSet
}

// NewPlayer creates a player with no flags standing in room.
func NewPlayer(name string, room int) *Player {
	return &Player{
		Name:  name,
		Room:  room,
		Flags: NameSet{},
	}
}

// Key returns the canonical name used to store and look up the player.
func (p *Player) Key() string {
	return Key(p.Name)
}

// HasFlag reports whether flag is set.
func (p *Player) HasFlag(flag string) bool {
	return p.Flags.Has(flag)
}

// SetFlag sets flag. Setting a flag that is already set is an error.
func (p *Player) SetFlag(flag string) error {
	if p.Flags == nil {
		p.Flags = NameSet{}
	}
	if !p.Flags.Add(flag) {
		return fmt.Errorf("%s: %w", flag, ErrFlagAlreadySet)
	}
	return nil
}

// ClearFlag clears flag. Clearing a flag that is not set is an error.
func (p *Player) ClearFlag(flag string) error {
	if !p.Flags.Remove(flag) {
		return fmt.Errorf("%s: %w", flag, ErrFlagNotSet)
	}
	return nil
}
