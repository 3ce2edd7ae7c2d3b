package complainterrors

import (
	"net/http"

	"hostel-client/internal/shared/apperror"
)

var (
	ErrMissingRollNo = apperror.New(
		apperror.CodeValidation,
		"Roll number is required",
		http.StatusBadRequest,
	)
	ErrBackwardTransition = apperror.New(
		apperror.CodeValidation,
		"Complaint status can only move forward",
		http.StatusBadRequest,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeValidation,
		"Unknown complaint status",
		http.StatusBadRequest,
	)
)
