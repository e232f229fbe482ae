package services

import "errors"

// ErrNotAuthorized signals a mutation that targets a session not
// owned by the caller. Read paths return a nil result instead.
var ErrNotAuthorized = errors.New("not authorized")
