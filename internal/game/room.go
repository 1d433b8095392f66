package game

import (
	"maps"
	"slices"
)

// Room is a location in the world. Rooms are built once at load time and are
// never modified afterwards.
type Room struct {
	Id          int
	Description string

	// Exits maps a canonical direction name to the destination room id.
	// Destinations are not checked against the world until traversed.
	Exits map[string]int
}

// NewRoom creates a room with no exits.
func NewRoom(id int, description string) *Room {
	return &Room{
		Id:          id,
		Description: description,
		Exits:       map[string]int{},
	}
}

// AddExit records an exit in direction dir leading to room id.
func (r *Room) AddExit(dir string, id int) {
	r.Exits[Key(dir)] = id
}

// Exit returns the destination of the exit in direction dir.
func (r *Room) Exit(dir string) (int, bool) {
	id, ok := r.Exits[Key(dir)]
	return id, ok
}

// ExitNames returns the room's exit directions in sorted order.
func (r *Room) ExitNames() []string {
	return slices.Sorted(maps.Keys(r.Exits))
}
