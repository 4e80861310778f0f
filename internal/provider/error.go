package provider

import "fmt"

// Error is returned when the provider answers with a non-success
// status. It carries the raw status and body for diagnostics; the
// secrets in the request never appear in it.
type Error struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider rejected %s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}
