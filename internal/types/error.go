package types

import "fmt"

// CustomError is the error shape the auth middleware and the server's error
// handler exchange: an HTTP status code plus a category the API envelope
// reports under "type" (e.g. "authorization").
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
