package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort lexicographically by creation time,
// which keeps trade records naturally ordered in the journal.
func New() string {
	return ulid.Make().String()
}
