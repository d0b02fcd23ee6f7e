package autodiff

import "errors"

var (
	// ErrUnknownSchedule is returned by ParseSchedule for unrecognized names.
	ErrUnknownSchedule = errors.New("unknown backward schedule")

	// ErrGradientMismatch is returned by CheckGradient when analytic and
	// numerical gradients disagree beyond the tolerance.
	ErrGradientMismatch = errors.New("gradient check failed")
)
