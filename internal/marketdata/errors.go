package marketdata

import (
	"errors"
	"fmt"
)

// ErrFetch matches every failure returned by Client. Transport errors,
// non-success statuses and malformed payloads all collapse into it.
var ErrFetch = errors.New("marketdata: fetch failed")

// FetchError describes a failed request. errors.Is(err, ErrFetch) holds for it.
type FetchError struct {
	Op  string // "markets" or "market_chart"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("marketdata: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// StatusError is the cause of a FetchError for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
