package recommend

import "sort"

// scored pairs a candidate profile id with a relevance score.
type scored struct {
	id    string
	score float64
}

// filterAndRank drops candidates scoring strictly below minScore (a
// candidate exactly at the floor is kept) and orders the rest by score
// descending. Ties break by profile id ascending so identical inputs
// always produce identical output.
func filterAndRank(candidates []scored, minScore float64) []scored {
	kept := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.score >= minScore {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].id < kept[j].id
	})

	return kept
}
