package link

import (
	"strconv"
	"time"
)

// Table names. They are part of the on-disk format: renaming one orphans the
// data stored under the old name.
const (
	PrimaryTable  = "urls_v1"
	RefIndexTable = "ref_index_v1"
)

// Record is a stored short link. The primary table keys records by ID; owned
// records additionally appear in the reference index under a composite
// "{ref_id}:{created_at_micros}" key, with the same serialized value in both
// tables.
type Record struct {
	// ID is the short identifier (slug). Unique, case-sensitive.
	ID string `doc:"Short identifier" example:"abc123" json:"id"`

	// OriginalURL is stored exactly as supplied by the caller.
	OriginalURL string `doc:"The original long URL" example:"https://example.com/very/long/path" json:"original_url"`

	// ShortURL is denormalized into storage for response convenience.
	ShortURL string `doc:"The full short URL" example:"http://localhost:8888/abc123" json:"short_url"`

	// RefID identifies the owner. Empty means the record is unowned: no
	// index entry exists and no ownership check guards deletion.
	RefID string `doc:"Owner reference" example:"user_123" json:"ref_id,omitempty" required:"false"`

	CreatedAt time.Time `doc:"Creation time (UTC)" json:"created_at"`

	// Clicks is persisted but never incremented; it defaults to zero when
	// decoding records written before the field existed.
	Clicks uint64 `doc:"Access count" json:"clicks,omitempty" required:"false"`
}

// IndexKey returns the record's composite reference-index key. The decimal
// microsecond epoch sorts lexicographically in numeric order for the
// timestamps this system produces, so a plain ascending scan yields
// same-owner records oldest first.
func (r Record) IndexKey() []byte {
	return []byte(r.RefID + ":" + strconv.FormatInt(r.CreatedAt.UnixMicro(), 10))
}

// indexLowerBound is the inclusive start of an owner's index range.
func indexLowerBound(refID string) []byte {
	return []byte(refID + ":")
}

// indexUpperBound is the exclusive end of an owner's index range. '{' is the
// first byte after 'z' we never emit, and it sorts after ':' and every digit,
// so [refID+":", refID+":{") covers exactly that owner's entries.
func indexUpperBound(refID string) []byte {
	return []byte(refID + ":{")
}
