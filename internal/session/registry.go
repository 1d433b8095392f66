package session

import (
	"slices"

	"github.com/pixil98/go-tinymud/internal/game"
)

// Registry owns every live session. Iteration follows accept order.
type Registry struct {
	sessions []*Session
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add takes ownership of s.
func (r *Registry) Add(s *Session) {
	r.sessions = append(r.sessions, s)
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

// Snapshot returns the current sessions. The slice is the caller's; sessions
// added afterwards are not in it.
func (r *Registry) Snapshot() []*Session {
	return slices.Clone(r.sessions)
}

// ForEach calls fn for every session in order.
func (r *Registry) ForEach(fn func(*Session)) {
	for _, s := range r.sessions {
		fn(s)
	}
}

// FindByName returns the live session holding name: one that is playing as
// it or is part way through creating it. A session that has only typed the
// name at the login prompt holds nothing until its password is accepted.
func (r *Registry) FindByName(name string) *Session {
	for _, s := range r.sessions {
		if s.Player == nil || !s.Connected() || s.closing {
			continue
		}
		switch s.State {
		case Playing, AwaitingNewPassword, ConfirmPassword:
			if game.EqualName(s.Player.Name, name) {
				return s
			}
		}
	}
	return nil
}

// FindPlaying returns the playing session for name, or nil.
func (r *Registry) FindPlaying(name string) *Session {
	for _, s := range r.sessions {
		if s.IsPlaying() && game.EqualName(s.Player.Name, name) {
			return s
		}
	}
	return nil
}

// CountByState tallies sessions per login state.
func (r *Registry) CountByState() map[State]int {
	counts := make(map[State]int, len(States))
	for _, s := range r.sessions {
		counts[s.State]++
	}
	return counts
}

// Reap removes every session that is dead or closing. Each one is flushed and
// closed, then passed to fn so the caller can persist it.
func (r *Registry) Reap(fn func(*Session)) int {
	before := len(r.sessions)
	r.sessions = slices.DeleteFunc(r.sessions, func(s *Session) bool {
		if s.Connected() && !s.closing {
			return false
		}
		s.destroy()
		if fn != nil {
			fn(s)
		}
		return true
	})
	return before - len(r.sessions)
}

// CloseAll destroys every session, passing each to fn, and empties the
// registry.
func (r *Registry) CloseAll(fn func(*Session)) {
	for _, s := range r.sessions {
		s.destroy()
		if fn != nil {
			fn(s)
		}
	}
	r.sessions = nil
}
