package recommend

import (
	"context"
	"fmt"

	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/request"
)

// queryResolver decides which vector represents "what the requester
// wants". A supplied preference replaces the self-embedding entirely;
// swapping this for a blending policy touches only this file.
type queryResolver struct {
	embed Embedder
}

// Resolve returns the query vector for a request. Without a preference
// it is the requester's own profile embedding. With one, the preference
// text is embedded, and a provider failure propagates: silently falling
// back to the self-embedding would return a lower-preference answer
// under the guise of success.
func (q *queryResolver) Resolve(
	ctx context.Context, requester *domprof.Profile, req *request.Request,
) ([]float32, error) {
	if !req.HasPreference() {
		return requester.Embedding(), nil
	}

	if q.embed == nil {
		return nil, fmt.Errorf("embed preference: no provider configured: %w", domain.ErrEmbeddingProviderError)
	}

	res, err := q.embed.Embed(ctx, req.Preference())
	if err != nil {
		return nil, fmt.Errorf("embed preference: %w", err)
	}
	return res.Embedding, nil
}
