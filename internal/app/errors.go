package app

import (
	"errors"
	"fmt"
)

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	var ire invalidReqErr
	if errors.As(err, &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// TransportError is returned when fetching single page from github fails.
// StatusCode is 0 when no http response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FetchError is returned when whole paginated listing was aborted.
// Listing describes what was listed, eg. "acme repositories".
type FetchError struct {
	Listing string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unable to fetch %s: %v", e.Listing, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DataError means that github returned data the app can't work with.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "invalid github data: " + e.Reason
}

// AggregationError is returned by Service.Aggregate.
// Failed listings already name the organization, so their message is not prefixed.
type AggregationError struct {
	Org string
	Err error
}

func (e *AggregationError) Error() string {
	var fe *FetchError
	if errors.As(e.Err, &fe) {
		return e.Err.Error()
	}
	return fmt.Sprintf("aggregating %s contributors: %v", e.Org, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// IsFetchError checks if given error was caused by failed github listing.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
