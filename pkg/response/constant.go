package response

const (
	DefaultErrorMessage     = "Something went wrong"
	MessageSuccess          = "Success"
	ValidationErrorCode     = 400
	ValidationErrorMsg      = "Validation error"
	InternalServerErrorCode = 500
)
