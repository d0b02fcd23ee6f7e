package optim

import "errors"

// ErrDiverged is returned when the objective becomes NaN or infinite.
var ErrDiverged = errors.New("objective diverged")
