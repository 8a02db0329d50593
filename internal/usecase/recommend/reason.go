package recommend

import (
	"strings"

	domprof "github.com/meetlab/scholarmatch/internal/domain/profile"
)

// matchReason describes overlapping declared interests between requester
// and candidate. Display convenience only: its presence or absence never
// changes ordering. Returns "" when nothing overlaps.
func matchReason(requester, candidate *domprof.Profile) string {
	if requester == nil || candidate == nil {
		return ""
	}

	candidateTags := make(map[string]struct{}, len(candidate.Interests()))
	for _, tag := range candidate.Interests() {
		if norm := normalizeTag(tag); norm != "" {
			candidateTags[norm] = struct{}{}
		}
	}
	if len(candidateTags) == 0 {
		return ""
	}

	// Requester order and wording keep the reason stable across runs.
	var shared []string
	seen := make(map[string]bool, len(requester.Interests()))
	for _, tag := range requester.Interests() {
		norm := normalizeTag(tag)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		if _, ok := candidateTags[norm]; ok {
			shared = append(shared, strings.TrimSpace(tag))
		}
	}

	if len(shared) == 0 {
		return ""
	}
	return "Shared interests: " + strings.Join(shared, ", ")
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
