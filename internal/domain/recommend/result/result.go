package result

// Recommendation is a single "person to meet" entry. Score is the final
// score after any diversification: the MMR marginal value when MMR was
// applied, raw cosine similarity otherwise.
type Recommendation struct {
	profileID   string
	score       float64
	matchReason string
}

// New creates a recommendation.
func New(profileID string, score float64, matchReason string) Recommendation {
	return Recommendation{profileID: profileID, score: score, matchReason: matchReason}
}

// ProfileID returns the recommended profile identifier.
func (r *Recommendation) ProfileID() string { return r.profileID }

// Score returns the final score.
func (r *Recommendation) Score() float64 { return r.score }

// MatchReason returns the human-readable reason ("" when none applies).
func (r *Recommendation) MatchReason() string { return r.matchReason }
