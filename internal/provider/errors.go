package provider

import "fmt"

// ErrorKind classifies a provider failure for the HTTP layer's status mapping.
type ErrorKind string

const (
	KindTransport  ErrorKind = "transport"  // connection or timeout
	KindStatus     ErrorKind = "status"     // non-2xx upstream response
	KindParse      ErrorKind = "parse"      // unparseable upstream body
	KindCredential ErrorKind = "credential" // missing or rejected key
)

// Error is any failure talking to an upstream provider.
type Error struct {
	Kind     ErrorKind
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// statusKind maps an upstream status code to a failure kind.
func statusKind(status int) ErrorKind {
	if status == 401 || status == 403 {
		return KindCredential
	}
	return KindStatus
}
