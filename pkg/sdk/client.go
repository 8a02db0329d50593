package scholarmatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meetlab/scholarmatch/internal/db"
	dbRedis "github.com/meetlab/scholarmatch/internal/db/redis"
	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/request"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/result"
	profilerepo "github.com/meetlab/scholarmatch/internal/repository/profile"
	profilesuc "github.com/meetlab/scholarmatch/internal/usecase/profiles"
	recommenduc "github.com/meetlab/scholarmatch/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can swap the services.
type profileUseCase interface {
	Upsert(ctx context.Context, id, name, affiliation string, interests []string, embedding []float32) (domprof.Profile, bool, error)
	Get(ctx context.Context, id string) (domprof.Profile, error)
	List(ctx context.Context) ([]domprof.Profile, error)
	Delete(ctx context.Context, id string) error
}

type recommendUseCase interface {
	Recommend(ctx context.Context, req *request.Request) ([]result.Recommendation, error)
}

// Client is the scholarmatch SDK entry point.
type Client struct {
	store     db.Store
	profiles  profileUseCase
	recommend recommendUseCase
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("scholarmatch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("scholarmatch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("scholarmatch: database not ready: %w", err)
	}

	repo := profilerepo.New(store)

	var embedder recommenduc.Embedder
	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}

	return &Client{
		store:     store,
		profiles:  profilesuc.New(repo),
		recommend: recommenduc.New(repo, embedder),
	}, nil
}

// Close releases the database connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// UpsertProfile creates or updates a profile. Returns true if created.
func (c *Client) UpsertProfile(ctx context.Context, p Profile) (bool, error) {
	_, created, err := c.profiles.Upsert(ctx, p.ID, p.Name, p.Affiliation, p.Interests, p.Embedding)
	if err != nil {
		return false, fmt.Errorf("scholarmatch: %w", err)
	}
	return created, nil
}

// GetProfile returns a profile by id.
func (c *Client) GetProfile(ctx context.Context, id string) (Profile, error) {
	p, err := c.profiles.Get(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("scholarmatch: %w", err)
	}
	return profileFromDomain(&p), nil
}

// ListProfiles returns all stored profiles in id order.
func (c *Client) ListProfiles(ctx context.Context) ([]Profile, error) {
	ps, err := c.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scholarmatch: %w", err)
	}
	out := make([]Profile, len(ps))
	for i := range ps {
		out[i] = profileFromDomain(&ps[i])
	}
	return out, nil
}

// DeleteProfile removes a profile by id.
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	if err := c.profiles.Delete(ctx, id); err != nil {
		return fmt.Errorf("scholarmatch: %w", err)
	}
	return nil
}

// Recommend returns up to opts.TopK "people to meet" for the given user.
// The user's own profile is never included. An empty result is a normal
// outcome, not an error.
func (c *Client) Recommend(ctx context.Context, userID string, opts RecommendOptions) ([]Recommendation, error) {
	req, err := opts.toRequest(userID)
	if err != nil {
		return nil, fmt.Errorf("scholarmatch: %w", err)
	}

	recs, err := c.recommend.Recommend(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("scholarmatch: %w", err)
	}

	out := make([]Recommendation, len(recs))
	for i := range recs {
		out[i] = recommendationFromDomain(&recs[i])
	}
	return out, nil
}

// embedderAdapter bridges the SDK Embedder to the usecase contract.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	vec, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}
