package types

import "net/http"

// Result is the structured outcome returned to the external trigger.
// Per-account failures never change the status; only missing
// configuration and report-delivery failures produce a 500.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// OK wraps a completion message in a 200 result.
func OK(body string) Result {
	return Result{StatusCode: http.StatusOK, Body: body}
}

// Failure wraps an error message in a 500 result.
func Failure(body string) Result {
	return Result{StatusCode: http.StatusInternalServerError, Body: body}
}
