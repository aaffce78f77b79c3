package link

import "errors"

var (
	// ErrNotFound indicates no record exists for the given identifier.
	ErrNotFound = errors.New("link not found")

	// ErrConflict indicates the identifier is already taken. Creation is
	// rejected, never overwritten.
	ErrConflict = errors.New("identifier already taken")

	// ErrForbidden indicates an ownership claim that does not match the
	// record, including claims against unowned records.
	ErrForbidden = errors.New("not authorized for this link")

	// ErrCorruptRecord indicates a stored value that no longer decodes.
	// Callers decide at their boundary whether to report it as absence.
	ErrCorruptRecord = errors.New("corrupt link record")
)
