package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meetlab/scholarmatch/internal/domain"
	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
)

// store is the consumer interface for profiles (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/recommend.Repository over a hash store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a profile repository with the default key prefix.
func New(s store) *Repo {
	return &Repo{store: s, keyPrefix: domain.KeyPrefix + "profile:"}
}

// WithKeyPrefix overrides the storage namespace, e.g. from config.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		r.keyPrefix = prefix + "profile:"
	}
	return r
}

// Upsert creates or updates a profile. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, p *domprof.Profile) (bool, error) {
	key := r.profileKey(p.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(p)); err != nil {
		return false, fmt.Errorf("hset %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	return !exists, nil
}

// Get returns a profile by id.
func (r *Repo) Get(ctx context.Context, id string) (domprof.Profile, error) {
	key := r.profileKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domprof.Profile{}, fmt.Errorf("hgetall %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	// HGETALL on a missing key yields an empty map, not an error.
	if len(m) == 0 {
		return domprof.Profile{}, domain.ErrProfileNotFound
	}
	return parseHashFields(id, m), nil
}

// List returns the full profile universe in profile-id order.
func (r *Repo) List(ctx context.Context) ([]domprof.Profile, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	// SCAN order is unspecified; sort so the universe is stable.
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w: %w", domain.ErrStoreUnavailable, err)
	}

	profiles := make([]domprof.Profile, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			// Deleted between SCAN and HGETALL.
			continue
		}
		profiles = append(profiles, parseHashFields(r.extractID(keys[i]), m))
	}
	return profiles, nil
}

// Delete removes a profile.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.profileKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	if !exists {
		return domain.ErrProfileNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Repo) profileKey(id string) string {
	return r.keyPrefix + id
}

func (r *Repo) extractID(key string) string {
	return strings.TrimPrefix(key, r.keyPrefix)
}
