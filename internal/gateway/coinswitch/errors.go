package coinswitch

import "fmt"

// RemoteError reports a transport failure or a non-2xx status from the
// remote API. Page is zero for non-paginated endpoints.
type RemoteError struct {
	Endpoint string
	Page     int
	Status   int // zero when the request never completed
	Err      error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Page != 0:
		return fmt.Sprintf("coinswitch: %s page %d returned status %d", e.Endpoint, e.Page, e.Status)
	case e.Status != 0:
		return fmt.Sprintf("coinswitch: %s returned status %d", e.Endpoint, e.Status)
	case e.Page != 0:
		return fmt.Sprintf("coinswitch: %s page %d failed: %v", e.Endpoint, e.Page, e.Err)
	default:
		return fmt.Sprintf("coinswitch: %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response whose shape did not match the
// documented contract (missing field, wrong type).
type MalformedResponseError struct {
	Endpoint string
	Page     int
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	if e.Page != 0 {
		return fmt.Sprintf("coinswitch: malformed response from %s page %d: %s", e.Endpoint, e.Page, e.Reason)
	}
	return fmt.Sprintf("coinswitch: malformed response from %s: %s", e.Endpoint, e.Reason)
}

// PaginationExhaustedError reports that closed-orders pagination exceeded its
// configured safety bound without the server signalling an empty page.
type PaginationExhaustedError struct {
	Endpoint string
	MaxPages int
}

func (e *PaginationExhaustedError) Error() string {
	return fmt.Sprintf("coinswitch: %s pagination exceeded %d pages", e.Endpoint, e.MaxPages)
}
