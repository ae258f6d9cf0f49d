package ado

import "fmt"

// TransportError means the HTTP exchange itself failed: DNS, refused
// connection, timeout, cancelled context or a truncated body.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a response received with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ADO API call failed: %d %s\n%s", e.StatusCode, e.Status, e.Body)
}

// ParseError is a response body that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse tags response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
