package domain

import "errors"

var (
	// ErrInvalidParameter signals a request parameter outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrProfileNotFound signals a missing profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrStoreUnavailable signals that the profile store cannot be reached.
	ErrStoreUnavailable = errors.New("profile store unavailable")
)
