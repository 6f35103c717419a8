package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyResult is returned when no taxi position falls inside any
// planning area. A report with zero rows is never produced.
var ErrEmptyResult = errors.New("no taxis matched any planning area")

// FetchError indicates a failure retrieving data from an external
// source (network, auth, malformed payload). It always aborts the run.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LookupError indicates the planning-area dataset is empty or entirely
// malformed, so no position could ever be assigned.
type LookupError struct {
	Reason string
}

func (e *LookupError) Error() string {
	return "planning area lookup: " + e.Reason
}
