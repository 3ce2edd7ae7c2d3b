package outpasserrors

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
	ErrNotPending = apperror.New(
		apperror.CodeValidation,
		"Only pending outpasses can change status",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidation,
		"Status must be Approved or Rejected",
		http.StatusBadRequest,
	)
	ErrReturnBeforeDeparture = apperror.New(
		apperror.CodeValidation,
		"Return time must be after departure time",
		http.StatusBadRequest,
	)
)
