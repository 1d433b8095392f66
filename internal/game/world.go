package game

import "fmt"

// World is the room graph. It is populated by the loader and treated as
// read-only while the server runs.
type World struct {
	rooms map[int]*Room
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{rooms: map[int]*Room{}}
}

// Add inserts a room. A room id may only be used once.
func (w *World) Add(r *Room) error {
	if _, exists := w.rooms[r.Id]; exists {
		return fmt.Errorf("room %d: %w", r.Id, ErrDuplicateRoom)
	}
	w.rooms[r.Id] = r
	return nil
}

// Room returns the room with the given id.
func (w *World) Room(id int) (*Room, error) {
	r, ok := w.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	return r, nil
}

// Len returns the number of rooms.
func (w *World) Len() int {
	return len(w.rooms)
}
