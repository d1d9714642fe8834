package domain

import "errors"

// Sentinel errors shared by the stores and services. Wrap them with
// fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrLazyAccess       = errors.New("relation accessed outside its session")
	ErrNotEnoughStock   = errors.New("not enough stock")
	ErrAlreadyDelivered = errors.New("order already delivered")
	ErrAlreadyCancelled = errors.New("order already cancelled")
)
