package recommend

import (
	"context"

	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
)

// Repository defines the profile store contract for recommendations.
type Repository interface {
	// Get returns a single profile. Missing profiles yield
	// domain.ErrProfileNotFound.
	Get(ctx context.Context, id string) (domprof.Profile, error)

	// List returns the full candidate profile universe.
	List(ctx context.Context) ([]domprof.Profile, error)
}

// Embedder vectorizes preference text into the query vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
