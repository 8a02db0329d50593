package recommend

import (
	"math"

	"github.com/meetlab/scholarmatch/internal/domain/vector"
)

// diversify re-selects up to topK candidates from the ranked list via
// greedy Maximal Marginal Relevance:
//
//	marginal(c) = lambda*relevance(c) - (1-lambda)*max sim(c, selected)
//
// lambda=1 degenerates to pure relevance order, lambda=0 to pure
// diversity. The returned scores are the marginal values at selection
// time, and the selection order is the final output order.
//
// The loop keeps an explicit selected/remaining pair: a picked candidate
// leaves remaining immediately, so it is never compared against itself.
func diversify(ranked []scored, vectors map[string][]float32, topK int, lambda float64) []scored {
	if topK > len(ranked) {
		topK = len(ranked)
	}

	selected := make([]scored, 0, topK)
	remaining := make([]scored, len(ranked))
	copy(remaining, ranked)

	for len(selected) < topK && len(remaining) > 0 {
		bestIdx := 0
		bestMarginal := math.Inf(-1)

		// remaining keeps the ranked order (score desc, id asc), so the
		// first-encountered maximum resolves marginal ties the same way
		// the ranking filter does, and at lambda=0 (all marginals equal
		// before anything is selected) the first pick is still the top
		// relevance item.
		for i, c := range remaining {
			// The penalty is the unclamped maximum similarity to the
			// selected set: a candidate pointing away from everything
			// already picked carries a negative penalty, which is a
			// marginal bonus. Candidates without a vector (and the first
			// pick, with nothing selected yet) get penalty 0.
			penalty := 0.0
			if len(selected) > 0 && len(vectors[c.id]) > 0 {
				penalty = math.Inf(-1)
				for _, s := range selected {
					if sim := vector.Cosine(vectors[c.id], vectors[s.id]); sim > penalty {
						penalty = sim
					}
				}
			}

			marginal := lambda*c.score - (1-lambda)*penalty
			if marginal > bestMarginal {
				bestMarginal = marginal
				bestIdx = i
			}
		}

		pick := remaining[bestIdx]
		pick.score = bestMarginal
		selected = append(selected, pick)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}
