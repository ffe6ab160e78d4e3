package id

import "github.com/oklog/ulid/v2"

// New generates a new ULID string. ULIDs sort by creation time, which keeps
// user rows roughly in signup order in every backend.
func New() string {
	return ulid.Make().String()
}
