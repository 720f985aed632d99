package serverutils

// AppError carries an HTTP status alongside a client-safe message. Anything
// that is not an AppError surfaces as a generic 500.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}
