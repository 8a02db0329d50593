package recommend

import (
	"context"
	"fmt"

	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/request"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/result"
	"github.com/meetlab/scholarmatch/internal/domain/vector"
)

// Service produces ordered, size-bounded, optionally diversified
// recommendation lists. Each call is a self-contained computation over
// data fetched at call time; the service holds no mutable state, so
// concurrent calls never need locking.
type Service struct {
	profiles Repository
	resolver queryResolver
}

// New creates a recommendation service.
func New(profiles Repository, embed Embedder) *Service {
	return &Service{
		profiles: profiles,
		resolver: queryResolver{embed: embed},
	}
}

// Recommend returns up to req.TopK() "people to meet" for the requester.
// The requester's own profile is excluded unconditionally. An empty list
// is a normal, successful outcome.
func (s *Service) Recommend(ctx context.Context, req *request.Request) ([]result.Recommendation, error) {
	requester, err := s.profiles.Get(ctx, req.UserID())
	if err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}

	queryVec, err := s.resolver.Resolve(ctx, &requester, req)
	if err != nil {
		return nil, err
	}

	universe, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	candidates := make([]scored, 0, len(universe))
	vectors := make(map[string][]float32, len(universe))
	byID := make(map[string]*domprof.Profile, len(universe))

	for i := range universe {
		c := &universe[i]
		if c.ID() == req.UserID() {
			continue
		}
		candidates = append(candidates, scored{
			id:    c.ID(),
			score: vector.Cosine(queryVec, c.Embedding()),
		})
		vectors[c.ID()] = c.Embedding()
		byID[c.ID()] = c
	}

	ranked := filterAndRank(candidates, req.MinScore())

	var final []scored
	if req.ApplyMMR() {
		final = diversify(ranked, vectors, req.TopK(), req.MMRLambda())
	} else {
		if len(ranked) > req.TopK() {
			ranked = ranked[:req.TopK()]
		}
		final = ranked
	}

	recs := make([]result.Recommendation, len(final))
	for i, c := range final {
		recs[i] = result.New(c.id, c.score, matchReason(&requester, byID[c.id]))
	}
	return recs, nil
}
