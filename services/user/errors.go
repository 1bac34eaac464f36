package user

import "errors"

// ValidationError reports a request-level problem the caller can fix.
// Handlers translate it into a 400 with the field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrInvalidCredentials is returned on failed login or refresh.
var ErrInvalidCredentials = errors.New("identifiants invalides")
