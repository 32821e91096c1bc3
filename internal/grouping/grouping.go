// Package grouping implements the bottom-level leader grouper and the
// merger that fuses shard results together.
package grouping

import "sort"

// Map is a group map: leader index -> ordered member indices, including
// the leader itself.
type Map map[int][]int

// SimFunc computes the composite similarity between two analyzer
// collection indices.
type SimFunc func(i, j int) float64

// fastProbeCap bounds how many leaders the fast leaf variant probes, in
// place of the accurate variant's full proximity-ordered scan.
const fastProbeCap = 32

// Leader runs the bottom-level greedy grouping over one shard: for each
// index, in shard order, it scans existing leaders — proximity-ordered
// when fast is false, capped to the most recently created ones when fast
// is true — and joins the first leader whose similarity meets threshold.
// An index matching no leader becomes a leader of its own new group.
func Leader(shard []int, threshold float64, sim SimFunc, fast bool) Map {
	m := make(Map)
	var leaders []int

	for _, i := range shard {
		var candidates []int
		if fast {
			candidates = leaders
			if len(candidates) > fastProbeCap {
				candidates = candidates[len(candidates)-fastProbeCap:]
			}
		} else {
			candidates = sortedByProximity(leaders, i)
		}

		matched := -1
		for _, l := range candidates {
			if sim(i, l) >= threshold {
				matched = l
				break
			}
		}

		if matched >= 0 {
			m[matched] = append(m[matched], i)
		} else {
			m[i] = []int{i}
			leaders = append(leaders, i)
		}
	}

	return m
}

// sortedByProximity orders leaders by |leader-i| ascending, breaking ties
// by natural (ascending) order — the analyzer collection's sort key makes
// near indices structurally similar, so this usually matches within a
// handful of probes.
func sortedByProximity(leaders []int, i int) []int {
	out := make([]int, len(leaders))
	copy(out, leaders)
	sort.SliceStable(out, func(a, b int) bool {
		da, db := abs(out[a]-i), abs(out[b]-i)
		if da != db {
			return da < db
		}
		return out[a] < out[b]
	})
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Merge fuses src into dst: for each source leader (in ascending index
// order, for determinism), it is matched against a snapshot of dst's
// leaders taken before the merge — so merges within one fuse never see
// each other — using the same first-match rule as Leader. A match appends
// the entire source group (leader included) to the destination group;
// no match inserts the source group into dst under its own leader.
//
// Callers must fuse shard results sequentially: Merge mutates dst on the
// caller's goroutine only.
func Merge(dst, src Map, threshold float64, sim SimFunc) Map {
	snapshot := make([]int, 0, len(dst))
	for l := range dst {
		snapshot = append(snapshot, l)
	}

	srcLeaders := make([]int, 0, len(src))
	for l := range src {
		srcLeaders = append(srcLeaders, l)
	}
	sort.Ints(srcLeaders)

	for _, ls := range srcLeaders {
		candidates := sortedByProximity(snapshot, ls)

		matched := -1
		for _, ld := range candidates {
			if sim(ls, ld) >= threshold {
				matched = ld
				break
			}
		}

		if matched >= 0 {
			dst[matched] = append(dst[matched], src[ls]...)
		} else {
			members := make([]int, len(src[ls]))
			copy(members, src[ls])
			dst[ls] = members
		}
	}

	return dst
}

// FilterMin drops groups whose member count is below min.
func FilterMin(m Map, min int) Map {
	if min <= 0 {
		return m
	}
	for l, members := range m {
		if len(members) < min {
			delete(m, l)
		}
	}
	return m
}
