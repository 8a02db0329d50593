package profiles

import (
	"context"

	"github.com/meetlab/scholarmatch/internal/domain/profile"
)

// Repository is the profile persistence contract.
type Repository interface {
	Upsert(ctx context.Context, p *profile.Profile) (bool, error)
	Get(ctx context.Context, id string) (profile.Profile, error)
	List(ctx context.Context) ([]profile.Profile, error)
	Delete(ctx context.Context, id string) error
}
