package esi

import "fmt"

// StatusError reports a non-200 reply from an ESI data endpoint.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ESI %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// AuthStatusError reports a non-200 reply from the OAuth token endpoint.
// It is kept distinct from StatusError so callers and logs can tell a
// credentials problem from an upstream data problem.
type AuthStatusError struct {
	StatusCode int
}

func (e *AuthStatusError) Error() string {
	return fmt.Sprintf("authentication failed with status %d", e.StatusCode)
}
