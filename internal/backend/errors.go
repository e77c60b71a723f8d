package backend

import (
	"encoding/json"
	"net/http"
)

// APIError is a non-2xx response from the parking backend, reduced to
// one human-readable message plus enough structure for workflows to
// classify it.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthFailure reports whether the backend rejected the session token.
func (e *APIError) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized
}

// PermissionDenied reports whether the backend refused the action for
// the current role.
func (e *APIError) PermissionDenied() bool {
	return e.Status == http.StatusForbidden
}

// errorBody mirrors the shapes the backend uses for error responses.
type errorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// newAPIError builds an APIError from a raw response body. Message
// precedence: nested error.message, flat message, first value of the
// field-level errors map, then the HTTP status text.
func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	switch {
	case body.Error != nil && body.Error.Message != "":
		apiErr.Message = body.Error.Message
		apiErr.Code = body.Error.Code
	case body.Message != "":
		apiErr.Message = body.Message
	default:
		for _, msgs := range body.Errors {
			if len(msgs) > 0 && msgs[0] != "" {
				apiErr.Message = msgs[0]
				break
			}
		}
	}

	return apiErr
}
