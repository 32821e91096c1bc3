// Package orchestrator selects an efficiency mode, shards an analyzer
// collection, dispatches the shards across scoped threads or a worker
// pool, fuses the per-shard group maps, and shapes the final result.
package orchestrator

import (
	"runtime"
	"sort"
	"sync"

	"github.com/dontbeproud/accountcluster/internal/grouping"
	"github.com/dontbeproud/accountcluster/internal/shard"
)

// Mode selects the leaf grouping algorithm and whether low-frequency
// groups are dropped per-shard before the merge.
type Mode int

const (
	Accurate Mode = iota
	Normal
	Quick
	Rapid
)

// Source is everything the orchestrator needs from an analyzer
// collection: its size, a key that groups structurally identical
// entries, the composite similarity between two entries, and the name a
// given index resolves to.
type Source interface {
	Len() int
	SkeletonKey(i int) string
	Similarity(i, j int) float64
	Name(i int) string
}

// defaultGranularity is the single-stage granularity used below the
// massive-data threshold.
const defaultGranularity = 400

// Cluster runs the full pipeline: shard, dispatch, merge, filter, shape.
// onProgress, if non-nil, is called with a 0-100 completion estimate as
// shards finish.
func Cluster(src Source, thresholdSim float64, minGroupMembers int, mode Mode, onProgress func(float64)) map[int][]string {
	if thresholdSim > 1.0 {
		thresholdSim = 1.0
	}

	n := src.Len()
	if n == 0 {
		return map[int][]string{}
	}

	cpu := runtime.NumCPU()
	t := cpu + 1
	massiveThreshold := t * t * 600
	granularity := defaultGranularity
	if n >= massiveThreshold {
		granularity = t * t * 400
	}

	// The per-shard pre-merge filter minimum scales with granularity the
	// same way the documented single-stage case does (400 -> 4, i.e. 1%).
	shardMin := granularity / 100
	if shardMin < 1 {
		shardMin = 1
	}
	if minGroupMembers < shardMin {
		shardMin = minGroupMembers
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	shards := shard.Split(indices, src.SkeletonKey, granularity)

	fast := mode == Quick || mode == Rapid
	prefilter := mode == Normal || mode == Rapid

	simFn := grouping.SimFunc(src.Similarity)

	results := dispatch(shards, t, thresholdSim, simFn, fast, prefilter, shardMin, onProgress)

	final := make(grouping.Map)
	for _, r := range results {
		final = grouping.Merge(final, r, thresholdSim, simFn)
	}
	grouping.FilterMin(final, minGroupMembers)

	return shape(final, src)
}

func dispatch(shards [][]int, workerCount int, threshold float64, sim grouping.SimFunc, fast, prefilter bool, shardMin int, onProgress func(float64)) []grouping.Map {
	if len(shards) == 0 {
		return nil
	}

	work := func(s []int) grouping.Map {
		m := grouping.Leader(s, threshold, sim, fast)
		if prefilter {
			grouping.FilterMin(m, shardMin)
		}
		return m
	}

	if len(shards) == 1 {
		return []grouping.Map{work(shards[0])}
	}

	resultCh := make(chan grouping.Map, len(shards))

	var wg sync.WaitGroup
	if len(shards) <= workerCount {
		for _, s := range shards {
			wg.Add(1)
			go func(s []int) {
				defer wg.Done()
				resultCh <- work(s)
			}(s)
		}
	} else {
		jobs := make(chan []int, len(shards))
		for _, s := range shards {
			jobs <- s
		}
		close(jobs)

		for w := 0; w < workerCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for s := range jobs {
					resultCh <- work(s)
				}
			}()
		}
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make([]grouping.Map, 0, len(shards))
	for m := range resultCh {
		out = append(out, m)
		if onProgress != nil {
			onProgress(float64(len(out)) / float64(len(shards)) * 100)
		}
	}
	return out
}

// shape sorts groups by size descending, assigns dense 0-based ids, and
// materializes member name strings.
func shape(final grouping.Map, src Source) map[int][]string {
	leaders := make([]int, 0, len(final))
	for l := range final {
		leaders = append(leaders, l)
	}
	sort.SliceStable(leaders, func(a, b int) bool {
		return len(final[leaders[a]]) > len(final[leaders[b]])
	})

	out := make(map[int][]string, len(leaders))
	for id, l := range leaders {
		members := final[l]
		names := make([]string, len(members))
		for i, m := range members {
			names[i] = src.Name(m)
		}
		out[id] = names
	}
	return out
}
