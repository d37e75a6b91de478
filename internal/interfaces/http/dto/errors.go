package dto

import "net/http"

// ErrInternal is the code reported for unexpected server failures
const ErrInternal = "INTERNAL_ERROR"

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":           http.StatusNotFound,
	"ALREADY_EXISTS":      http.StatusConflict,
	"INVALID_INPUT":       http.StatusBadRequest,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INTEGRITY_VIOLATION": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	ErrInternal:           http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
