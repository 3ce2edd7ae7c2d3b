package apperror

const (
	// Request reached the backend and was rejected
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeAuth       = "AUTH_ERROR"

	// Request never completed, or the response was unusable
	CodeNetwork = "NETWORK_ERROR"
	CodeShape   = "SHAPE_ERROR"

	// Local outcomes
	CodeCancelled = "USER_CANCELLED"
)
