package table

import "fmt"

// ParseError reports a response body that is not a usable chart data
// payload. No partial table is returned alongside it.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to parse chart data: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("unable to parse chart data: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TemporalCastError reports a temporal column that could not be converted
// to timestamps. It is logged and never returned from Build.
type TemporalCastError struct {
	Column string
	Err    error
}

func (e *TemporalCastError) Error() string {
	return fmt.Sprintf("unable to cast column %q to timestamp: %s", e.Column, e.Err)
}

func (e *TemporalCastError) Unwrap() error {
	return e.Err
}
