package scholarmatch

import "github.com/meetlab/scholarmatch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidParameter       = domain.ErrInvalidParameter
	ErrProfileNotFound        = domain.ErrProfileNotFound
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrStoreUnavailable       = domain.ErrStoreUnavailable
)
