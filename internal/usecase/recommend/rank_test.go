package recommend

import "testing"

func TestFilterAndRank_DropsBelowThreshold(t *testing.T) {
	in := []scored{
		{id: "a", score: 0.9},
		{id: "b", score: 0.2},
		{id: "c", score: 0.5},
	}
	out := filterAndRank(in, 0.3)
	if len(out) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(out))
	}
	for _, c := range out {
		if c.score < 0.3 {
			t.Errorf("candidate %s below threshold survived: %v", c.id, c.score)
		}
	}
}

func TestFilterAndRank_ExactThresholdKept(t *testing.T) {
	out := filterAndRank([]scored{{id: "a", score: 0.3}}, 0.3)
	if len(out) != 1 {
		t.Fatalf("candidate exactly at min_score must be kept, got %d results", len(out))
	}
}

func TestFilterAndRank_DescendingOrder(t *testing.T) {
	in := []scored{
		{id: "low", score: 0.1},
		{id: "high", score: 0.9},
		{id: "mid", score: 0.5},
	}
	out := filterAndRank(in, 0)
	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if out[i].id != id {
			t.Errorf("position %d: expected %s, got %s", i, id, out[i].id)
		}
	}
}

func TestFilterAndRank_TieBreakByID(t *testing.T) {
	in := []scored{
		{id: "zeta", score: 0.5},
		{id: "alpha", score: 0.5},
		{id: "mike", score: 0.5},
	}
	out := filterAndRank(in, 0)
	want := []string{"alpha", "mike", "zeta"}
	for i, id := range want {
		if out[i].id != id {
			t.Errorf("position %d: expected %s, got %s", i, id, out[i].id)
		}
	}
}

func TestFilterAndRank_NegativeThresholdKeepsNegativeScores(t *testing.T) {
	in := []scored{{id: "a", score: -0.4}, {id: "b", score: -0.6}}
	out := filterAndRank(in, -0.5)
	if len(out) != 1 || out[0].id != "a" {
		t.Fatalf("expected only a, got %+v", out)
	}
}

func TestFilterAndRank_Empty(t *testing.T) {
	if out := filterAndRank(nil, 0); len(out) != 0 {
		t.Fatalf("expected empty, got %+v", out)
	}
}
