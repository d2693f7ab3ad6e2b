package utils

import "errors"

// ErrUserInitiatedExit signals that the user asked to leave, ctrl+c or
// similar. It is not a failure.
var ErrUserInitiatedExit = errors.New("user initiated exit")
