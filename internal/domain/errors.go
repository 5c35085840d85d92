package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrDuplicate       = errors.New("duplicate record")
	ErrProviderFailure = errors.New("provider failure")
	ErrStoreFailure    = errors.New("store failure")
)
