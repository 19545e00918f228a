package apiclient

import (
	"fmt"
	"net/http"
)

// APIError is a failed dashboard request. StatusCode is 0 when the server
// never answered.
type APIError struct {
	StatusCode int

	// Detail is the server supplied reason, when there is one.
	Detail string

	Err error
}

func (e *APIError) Error() string {
	msg := StatusMessage(e.StatusCode)
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusMessage maps a response status to the message shown to the user.
func StatusMessage(status int) string {
	switch status {
	case 0:
		return "network error, server did not respond"
	case http.StatusBadRequest:
		return "bad request parameters"
	case http.StatusUnauthorized:
		return "unauthorized, please log in again"
	case http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "requested resource not found"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return fmt.Sprintf("request failed (%d)", status)
	}
}
