// Package ids issues identifiers for ledger entities.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator func() string

// New returns a random (version 4) UUID in its canonical text form.
// All four collections draw from the same generator, so identifiers are
// unique across admins, groups, members and contributions.
func New() string {
	return uuid.New().String()
}

// Sequence returns a Generator that yields prefix-1, prefix-2, ...
// Useful where tests need predictable identifiers. The generator is safe
// for concurrent use; each call gets a distinct number.
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
