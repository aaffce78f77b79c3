package link

import (
	"github.com/jaevor/go-nanoid"
)

// alphabet matches the identifiers the system has always produced: digits
// plus upper- and lowercase letters, 62 symbols.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator produces random identifiers. It does no uniqueness pre-check;
// uniqueness is enforced transactionally by Store.Create, and a collision
// surfaces to the caller as ErrConflict.
type Generator func() string

// NewGenerator returns a uniform random identifier generator of the given
// length.
func NewGenerator(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(alphabet, length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}
