package session

type broadcastFilter struct {
	except  *Session
	room    int
	hasRoom bool
}

// BroadcastOpt narrows the recipients of a broadcast.
type BroadcastOpt func(*broadcastFilter)

// Except skips s.
func Except(s *Session) BroadcastOpt {
	return func(f *broadcastFilter) {
		f.except = s
	}
}

// InRoom limits delivery to players standing in room.
func InRoom(room int) BroadcastOpt {
	return func(f *broadcastFilter) {
		f.room = room
		f.hasRoom = true
	}
}

// Broadcast queues msg for every playing session that passes the filters and
// returns how many received it.
func (r *Registry) Broadcast(msg string, opts ...BroadcastOpt) int {
	var f broadcastFilter
	for _, o := range opts {
		o(&f)
	}

	sent := 0
	for _, s := range r.sessions {
		if !s.IsPlaying() || s == f.except {
			continue
		}
		if f.hasRoom && s.Player.Room != f.room {
			continue
		}
		s.Send(msg)
		sent++
	}
	return sent
}
