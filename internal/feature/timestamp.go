package feature

import "sync/atomic"

// clock is shared by every Timestamp so that modification times of
// different objects can be compared.
var clock atomic.Uint64

// Timestamp records when an object was last modified.
type Timestamp struct {
	mtime uint64
}

// Modified stamps t with the next tick.
func (t *Timestamp) Modified() {
	t.mtime = clock.Add(1)
}

// MTime returns the tick of the last Modified call, 0 if never modified.
func (t *Timestamp) MTime() uint64 {
	return t.mtime
}
