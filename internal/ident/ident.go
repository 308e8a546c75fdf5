package ident

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a short opaque token used to name worksheets and submissions.
// The leading group of a v4 UUID gives 8 hex characters, which is ample
// headroom for the tens-to-hundreds of records a single deployment holds.
func New() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
