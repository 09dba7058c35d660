package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrNoCredentials      = errors.New("no stored credentials")
	ErrStorageUnavailable = errors.New("credential storage unavailable")
	ErrNotAuthenticated   = errors.New("not authenticated")
)
