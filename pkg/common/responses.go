package common

import (
	"encoding/json"
	"net/http"

	apperrors "tastebud/pkg/errors"
)

// ErrorResponse is the JSON error envelope sent to clients
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError sends an error response with an explicit status
func RespondError(w http.ResponseWriter, status int, errType, message string) {
	RespondJSON(w, status, ErrorResponse{
		Error:   true,
		Type:    errType,
		Message: message,
	})
}

// RespondAppError maps an application error onto the HTTP response. Unknown
// error values are reported as internal without leaking their cause.
func RespondAppError(w http.ResponseWriter, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
		return
	}
	RespondError(w, http.StatusInternalServerError, string(apperrors.ErrorTypeInternal), "internal server error")
}
