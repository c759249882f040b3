// Package persist abstracts the durable key-value slot the cache snapshots
// its entry table into. The cache never branches on the concrete backend: a
// file, an embedded store or nothing at all satisfy the same interface.
package persist

// Store holds one opaque snapshot, last writer wins.
type Store interface {
	// Load reads the current snapshot. found is false when none exists.
	Load() (snapshot []byte, found bool, err error)

	// Save overwrites the snapshot.
	Save(snapshot []byte) error

	// Clear drops the snapshot.
	Clear() error
}

// NoOp backs a cache with persistence disabled.
type NoOp struct{}

func (NoOp) Load() ([]byte, bool, error) { return nil, false, nil }
func (NoOp) Save([]byte) error           { return nil }
func (NoOp) Clear() error                { return nil }
