package pricebook

import "fmt"

// StatusError is a non-2xx backend response. The body is carried
// verbatim so the dialog surface can show exactly what the server said.
type StatusError struct {
	Body string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}
