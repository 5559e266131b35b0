package storage

import "sync"

// Availability is the cached verdict on whether the durable backend works.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityAvailable
	AvailabilityUnavailable
)

func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "available"
	case AvailabilityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// State is the process-wide fallback state shared by every Adapter in the
// process: the in-memory mirror of all writes and the availability verdict.
// A new State starts with an empty map and an unknown verdict. It is only
// torn down by ResetAll or by an Adapter's Clear.
type State struct {
	mu           sync.RWMutex
	mem          map[string]string
	availability Availability
}

// NewState returns an empty State.
func NewState() *State {
	return &State{mem: make(map[string]string)}
}

// ResetAll empties the memory map and forgets the availability verdict.
func (s *State) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem = make(map[string]string)
	s.availability = AvailabilityUnknown
}

// Availability returns the cached verdict.
func (s *State) Availability() Availability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availability
}

func (s *State) setAvailability(a Availability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Unavailable is sticky.
	if s.availability == AvailabilityUnavailable {
		return
	}
	s.availability = a
}

func (s *State) memGet(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.mem[key]
	return v, ok
}

func (s *State) memSet(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem[key] = value
}

func (s *State) memDelete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mem, key)
}

func (s *State) memClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem = make(map[string]string)
}
