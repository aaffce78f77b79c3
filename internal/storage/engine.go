package storage

import "errors"

// ErrStop can be returned from a Scan callback to end the scan early.
// Scan swallows it and returns nil.
var ErrStop = errors.New("storage: stop scan")

// Engine is an ordered, transactional key-value store with named tables.
//
// Transactions are exposed as units of work rather than begin/commit pairs:
// the closure passed to Update runs inside a single write transaction that
// commits iff the closure returns nil. Any error discards every mutation made
// inside it. View runs the closure against a consistent read snapshot taken
// at transaction start; readers never block writers.
//
// Byte slices handed to a closure are only valid until the closure returns.
type Engine interface {
	// View runs fn inside a read-only transaction.
	View(fn func(tx Tx) error) error

	// Update runs fn inside a write transaction, committing atomically when
	// fn returns nil and rolling back otherwise.
	Update(fn func(tx Tx) error) error

	Close() error
}

// Tx is a transaction handle scoped to the enclosing View/Update closure.
type Tx interface {
	// Table returns a handle to a named table. Tables must have been created
	// at engine open time; their names are part of the on-disk format.
	Table(name string) (Table, error)
}

// Table is a single ordered table within a transaction.
type Table interface {
	// Get returns the value stored under key, or nil if the key is absent.
	Get(key []byte) []byte

	Put(key, value []byte) error

	Delete(key []byte) error

	// Scan calls fn for each entry in the half-open range [lo, hi), ascending
	// by lexicographic byte comparison. A nil lo starts at the first key and
	// a nil hi runs to the end of the table.
	Scan(lo, hi []byte, fn func(key, value []byte) error) error
}
