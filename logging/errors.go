package logging

import "errors"

var (
	// ErrConfiguration is returned by New when the mode is not recognized or
	// the credentials the mode requires are missing.
	ErrConfiguration = errors.New("invalid logger configuration")

	// ErrSinkWrite wraps any failure to deliver a record to a sink.
	ErrSinkWrite = errors.New("sink write failed")
)
