package profiles

import (
	"context"
	"fmt"

	"github.com/meetlab/scholarmatch/internal/domain"
	"github.com/meetlab/scholarmatch/internal/domain/profile"
)

// Service manages researcher profiles.
type Service struct {
	repo Repository
}

// New creates a profile service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores a profile. Returns true if the profile
// was created rather than updated.
func (s *Service) Upsert(ctx context.Context, id, name, affiliation string, interests []string, embedding []float32) (profile.Profile, bool, error) {
	if id == "" {
		return profile.Profile{}, false, fmt.Errorf("%w: profile id is required", domain.ErrInvalidParameter)
	}
	if name == "" {
		return profile.Profile{}, false, fmt.Errorf("%w: profile name is required", domain.ErrInvalidParameter)
	}

	p := profile.New(id, name, affiliation, interests, embedding)
	created, err := s.repo.Upsert(ctx, &p)
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("upsert profile: %w", err)
	}
	return p, created, nil
}

// Get returns a profile by id.
func (s *Service) Get(ctx context.Context, id string) (profile.Profile, error) {
	if id == "" {
		return profile.Profile{}, fmt.Errorf("%w: profile id is required", domain.ErrInvalidParameter)
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// List returns all stored profiles in id order.
func (s *Service) List(ctx context.Context) ([]profile.Profile, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return ps, nil
}

// Delete removes a profile by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: profile id is required", domain.ErrInvalidParameter)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
