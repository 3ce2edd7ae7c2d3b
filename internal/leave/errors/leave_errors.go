package leaveerrors

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
	ErrInvalidDateRange = apperror.New(
		apperror.CodeValidation,
		"End date must not be before start date",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeValidation,
		"Only pending leave requests can change status",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"Status must be approved or rejected",
		http.StatusBadRequest,
	)
)
