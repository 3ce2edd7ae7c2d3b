package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hostel-client/internal/shared/apperror"
)

type serverMessage struct {
	Message string `json:"message"`
}

// mapStatusError applies the error taxonomy: 404 is NOT_FOUND, any other
// rejection carrying a message field is VALIDATION_ERROR with that message,
// and everything else degrades to NETWORK_ERROR.
func mapStatusError(status int, body []byte) error {
	if status == http.StatusNotFound {
		return apperror.ErrNotFound
	}

	var msg serverMessage
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return apperror.Validation(msg.Message, status)
	}

	return apperror.Wrap(fmt.Errorf("unexpected status %d", status), apperror.CodeNetwork, "Request failed", status)
}

func errCode(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return apperror.CodeNetwork
}
