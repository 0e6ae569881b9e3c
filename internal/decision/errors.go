package decision

import "errors"

// ErrMalformedHistory marks a history that violates the input contract:
// a missing role entry, a missing state field, or an out-of-order week.
var ErrMalformedHistory = errors.New("malformed history")
