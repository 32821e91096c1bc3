package grouping

import "testing"

// simTable builds a symmetric SimFunc from an explicit similarity matrix,
// with self-similarity always 1.
func simTable(values map[[2]int]float64) SimFunc {
	return func(i, j int) float64 {
		if i == j {
			return 1.0
		}
		key := [2]int{i, j}
		if v, ok := values[key]; ok {
			return v
		}
		key = [2]int{j, i}
		if v, ok := values[key]; ok {
			return v
		}
		return 0.0
	}
}

func TestLeaderGroupsAboveThreshold(t *testing.T) {
	sim := simTable(map[[2]int]float64{
		{0, 1}: 0.9,
		{0, 2}: 0.1,
	})

	m := Leader([]int{0, 1, 2}, 0.856, sim, false)

	if len(m) != 2 {
		t.Fatalf("got %d groups, want 2: %v", len(m), m)
	}
	if members, ok := m[0]; !ok || len(members) != 2 {
		t.Fatalf("leader 0 group = %v, want [0 1]", members)
	}
	if members, ok := m[2]; !ok || len(members) != 1 {
		t.Fatalf("leader 2 group = %v, want [2]", members)
	}
}

func TestLeaderThresholdOneSingletonsOnly(t *testing.T) {
	sim := simTable(map[[2]int]float64{
		{0, 1}: 0.99,
	})

	m := Leader([]int{0, 1, 2, 3}, 1.0, sim, false)
	if len(m) != 4 {
		t.Fatalf("got %d groups at threshold 1.0, want 4 singletons: %v", len(m), m)
	}
}

func TestMergeSnapshotPreventsInBatchSelfAbsorption(t *testing.T) {
	// dst starts empty; src has two leaders 0 and 1 that would match each
	// other above threshold. Since the snapshot of dst is empty before the
	// merge, both must land as their own keys in dst, not absorb each other.
	sim := simTable(map[[2]int]float64{
		{0, 1}: 0.99,
	})

	dst := make(Map)
	src := Map{0: {0}, 1: {1}}

	out := Merge(dst, src, 0.856, sim)
	if len(out) != 2 {
		t.Fatalf("got %d groups, want 2 (no in-batch self absorption): %v", len(out), out)
	}
}

func TestMergeAbsorbsIntoExistingLeader(t *testing.T) {
	sim := simTable(map[[2]int]float64{
		{0, 5}: 0.9,
	})

	dst := Map{0: {0}}
	src := Map{5: {5, 6}}

	out := Merge(dst, src, 0.856, sim)
	if len(out) != 1 {
		t.Fatalf("got %d groups, want 1: %v", len(out), out)
	}
	if len(out[0]) != 3 {
		t.Fatalf("leader 0 group = %v, want 3 members", out[0])
	}
}

func TestFilterMin(t *testing.T) {
	m := Map{0: {0, 1, 2}, 5: {5}, 9: {9, 10}}
	FilterMin(m, 2)
	if len(m) != 2 {
		t.Fatalf("got %d groups after filtering, want 2: %v", len(m), m)
	}
	if _, ok := m[5]; ok {
		t.Fatalf("singleton group 5 should have been dropped")
	}
}

func TestFilterMinZeroKeepsSingletons(t *testing.T) {
	m := Map{0: {0}, 1: {1}}
	FilterMin(m, 0)
	if len(m) != 2 {
		t.Fatalf("min_group_members=0 should keep all groups, got %d", len(m))
	}
}
