package model

import "errors"

// Common errors used across the application
var (
	// Account store errors
	ErrAccountNotFound = errors.New("account not found")
	ErrNameConflict    = errors.New("account name already exists")
	ErrReservedName    = errors.New("account name is reserved")
	ErrStoreCorrupted  = errors.New("account data corrupted")

	// Live session errors
	ErrRegistryKeyNotFound = errors.New("game registry key not found")
	ErrNoActiveSession     = errors.New("no active login session")
	ErrInvalidToken        = errors.New("access token is invalid")
)
