package quiz

import "sync/atomic"

// frameMsg animates the practice illustration. id ties the tick to one
// screen instance.
type frameMsg struct {
	id uint64
}

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }
