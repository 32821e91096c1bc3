// Package shard splits a sequence of indices, already sorted by the
// analyzer collection's structural key, into the shards the clustering
// engine hands out to its workers.
package shard

import "sort"

// Split buckets indices by the equality of keyOf(i) — collapsing runs of
// indices sharing one key, since the caller's ordering already clusters
// structurally identical entries contiguously — sorts those buckets by
// size descending, then chops each bucket into granularity-sized shards.
func Split(indices []int, keyOf func(int) string, granularity int) [][]int {
	if len(indices) == 0 {
		return nil
	}

	buckets := bucketize(indices, keyOf)
	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i]) > len(buckets[j])
	})

	var shards [][]int
	for _, b := range buckets {
		shards = append(shards, chop(b, granularity)...)
	}
	return shards
}

func bucketize(indices []int, keyOf func(int) string) [][]int {
	var buckets [][]int
	var cur []int
	var curKey string

	for i, idx := range indices {
		k := keyOf(idx)
		if i == 0 || k != curKey {
			if len(cur) > 0 {
				buckets = append(buckets, cur)
			}
			cur = nil
			curKey = k
		}
		cur = append(cur, idx)
	}
	if len(cur) > 0 {
		buckets = append(buckets, cur)
	}
	return buckets
}

// chop splits indices into consecutive shards of size granularity. A
// trailing remainder smaller than half the granularity folds into the
// previous shard instead of forming its own undersized one. A bucket
// smaller than granularity becomes a single shard.
func chop(indices []int, granularity int) [][]int {
	n := len(indices)
	if n == 0 {
		return nil
	}

	g := granularity
	if g <= 0 || n < g {
		return [][]int{clone(indices)}
	}

	var out [][]int
	full := n / g
	for i := 0; i < full; i++ {
		out = append(out, clone(indices[i*g:(i+1)*g]))
	}

	rem := n - full*g
	if rem > 0 {
		if float64(rem) < float64(g)/2.0 {
			last := out[len(out)-1]
			out[len(out)-1] = append(last, indices[full*g:]...)
		} else {
			out = append(out, clone(indices[full*g:]))
		}
	}
	return out
}

func clone(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}
