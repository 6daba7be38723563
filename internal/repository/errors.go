package repository

import "errors"

// ErrNotFound marks an absent single-row lookup. Callers check it with
// errors.Is; it is the "expected absence" half of the error contract, as
// opposed to constraint violations, which propagate as driver errors.
var ErrNotFound = errors.New("not found")
