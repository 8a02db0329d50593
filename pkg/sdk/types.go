package scholarmatch

import (
	"github.com/meetlab/scholarmatch/internal/domain/profile"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/request"
	"github.com/meetlab/scholarmatch/internal/domain/recommend/result"
)

// Profile is a researcher profile.
type Profile struct {
	ID          string
	Name        string
	Affiliation string
	Interests   []string
	Embedding   []float32
}

// Recommendation is a single "person to meet" entry. Score is the MMR
// marginal value when diversification was applied, raw cosine similarity
// otherwise.
type Recommendation struct {
	ProfileID   string
	Score       float64
	MatchReason string
}

// RecommendOptions tunes a recommendation query. The zero value asks for
// the default list size with no score floor and diversification on.
// ApplyMMR and MMRLambda are pointers so an explicit false or 0 (pure
// diversity) is distinguishable from "not set".
type RecommendOptions struct {
	// TopK bounds the result size. <= 0 means the default (3).
	TopK int
	// MinScore drops candidates scoring below it. Candidates scoring
	// exactly MinScore are kept.
	MinScore float64
	// ApplyMMR toggles Maximal Marginal Relevance diversification.
	// nil means the default (enabled).
	ApplyMMR *bool
	// MMRLambda is the relevance/diversity trade-off in [0, 1].
	// nil means the default (0.5); an explicit 0 is pure diversity.
	MMRLambda *float64
	// Preference is free text describing what the requester wants to
	// find. When set it replaces the requester's own embedding as the
	// query vector.
	Preference string
}

// Bool returns a pointer to b, for filling RecommendOptions.
func Bool(b bool) *bool { return &b }

// Float64 returns a pointer to f, for filling RecommendOptions.
func Float64(f float64) *float64 { return &f }

func (o RecommendOptions) toRequest(userID string) (request.Request, error) {
	topK := o.TopK
	if topK <= 0 {
		topK = request.DefaultTopK
	}
	applyMMR := request.DefaultApplyMMR
	if o.ApplyMMR != nil {
		applyMMR = *o.ApplyMMR
	}
	lambda := request.DefaultMMRLambda
	if o.MMRLambda != nil {
		lambda = *o.MMRLambda
	}
	return request.New(userID, topK, o.MinScore, applyMMR, lambda, o.Preference)
}

func profileFromDomain(p *profile.Profile) Profile {
	return Profile{
		ID:          p.ID(),
		Name:        p.Name(),
		Affiliation: p.Affiliation(),
		Interests:   p.Interests(),
		Embedding:   p.Embedding(),
	}
}

func recommendationFromDomain(r *result.Recommendation) Recommendation {
	return Recommendation{
		ProfileID:   r.ProfileID(),
		Score:       r.Score(),
		MatchReason: r.MatchReason(),
	}
}
