package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"
	DateTimeFormat      = "2006-01-02 15:04:05"

	ValidationErrorCode      = 1
	InternalServerErrorCode  = 500
	TooManyRequestsErrorCode = 429
	UnavailableErrorCode     = 503
)
