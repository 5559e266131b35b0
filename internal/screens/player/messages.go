package player

import "sync/atomic"

// frameMsg drives redraws while the screen is visible. id ties the tick to
// one screen instance so stale ticks from a replaced player are dropped.
type frameMsg struct {
	id uint64
}

var lastID atomic.Uint64

func nextID() uint64 { return lastID.Add(1) }
