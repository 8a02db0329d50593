package request

import (
	"fmt"
	"math"
	"strings"

	"github.com/meetlab/scholarmatch/internal/domain"
)

// Recommendation parameter defaults applied when a request omits them.
const (
	DefaultTopK      = 3
	DefaultMinScore  = 0.0
	DefaultApplyMMR  = true
	DefaultMMRLambda = 0.5
)

// Request is a validated recommendation query.
type Request struct {
	userID     string
	topK       int
	minScore   float64
	applyMMR   bool
	mmrLambda  float64
	preference string
}

// New validates recommendation parameters. Unlike search-style clamping,
// out-of-range values are hard errors: a caller asking for top_k=0 or
// lambda=2 made a mistake we must not paper over.
// The preference text is trimmed; an empty string counts as absent.
func New(userID string, topK int, minScore float64, applyMMR bool, mmrLambda float64, preference string) (Request, error) {
	if userID == "" {
		return Request{}, fmt.Errorf("%w: user_id is required", domain.ErrInvalidParameter)
	}
	if topK <= 0 {
		return Request{}, fmt.Errorf("%w: top_k must be > 0, got %d", domain.ErrInvalidParameter, topK)
	}
	if math.IsNaN(minScore) || math.IsInf(minScore, 0) {
		return Request{}, fmt.Errorf("%w: min_score must be finite", domain.ErrInvalidParameter)
	}
	if math.IsNaN(mmrLambda) || mmrLambda < 0 || mmrLambda > 1 {
		return Request{}, fmt.Errorf("%w: mmr_lambda must be in [0, 1], got %v", domain.ErrInvalidParameter, mmrLambda)
	}

	return Request{
		userID:     userID,
		topK:       topK,
		minScore:   minScore,
		applyMMR:   applyMMR,
		mmrLambda:  mmrLambda,
		preference: strings.TrimSpace(preference),
	}, nil
}

// UserID returns the requester identifier.
func (r *Request) UserID() string { return r.userID }

// TopK returns the maximum number of recommendations to return.
func (r *Request) TopK() int { return r.topK }

// MinScore returns the relevance floor applied before any diversification.
func (r *Request) MinScore() float64 { return r.minScore }

// ApplyMMR reports whether the diversifier runs.
func (r *Request) ApplyMMR() bool { return r.applyMMR }

// MMRLambda returns the relevance/diversity trade-off weight.
func (r *Request) MMRLambda() float64 { return r.mmrLambda }

// Preference returns the trimmed free-text preference ("" when absent).
func (r *Request) Preference() string { return r.preference }

// HasPreference reports whether a non-blank preference was supplied.
func (r *Request) HasPreference() bool { return r.preference != "" }
