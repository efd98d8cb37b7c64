package bgpstuff

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by input validation before any request is made.
var (
	ErrInvalidIP  = errors.New("not a public IP address")
	ErrInvalidASN = errors.New("not a public AS number")
)

// RequestError reports a failed exchange with the bgpstuff.net service:
// a transport failure, a non-2xx status, or an undecodable body.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Snippet    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("bgpstuff: %s returned status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("bgpstuff: %s: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As inspection.
func (e *RequestError) Unwrap() error { return e.Err }
