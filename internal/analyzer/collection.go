package analyzer

import (
	"bytes"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dontbeproud/accountcluster/internal/orchestrator"
)

// similarityCacheSize bounds the per-call memoization of pairwise
// composite scores, so the cache never grows unbounded on huge inputs. A
// clustering run only consults pairs within a shard plus merge
// candidates; when those exceed this many entries (a 400-index shard of
// singletons already probes 79,800 pairs), the least recently used
// scores are evicted and recomputed on demand.
const similarityCacheSize = 1 << 16

type pairKey struct {
	lo, hi int
}

// Collection is a deduplicated, sorted set of account names ready for
// clustering. Construction is the only place dedup and sort happen;
// everything else operates on stable indices into the sorted set.
type Collection struct {
	records []Record
	weights WeightTable
	cache   *lru.Cache[pairKey, float64]
}

// NewCollection deduplicates names and sorts the resulting records by
// (SkeletonStyle, SkeletonSizes, Name), so structurally identical names
// land next to each other — the ordering internal/shard relies on to
// bucket by skeleton key with a single contiguous-run scan.
func NewCollection(names []string) *Collection {
	seen := make(map[string]struct{}, len(names))
	records := make([]Record, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		records = append(records, NewRecord(n))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return lessRecord(records[i], records[j])
	})

	cache, _ := lru.New[pairKey, float64](similarityCacheSize)

	return &Collection{
		records: records,
		weights: DefaultWeights,
		cache:   cache,
	}
}

func lessRecord(a, b Record) bool {
	if c := compareBytes(a.SkeletonStyle, b.SkeletonStyle); c != 0 {
		return c < 0
	}
	if c := compareInt64s(a.SkeletonSizes, b.SkeletonSizes); c != 0 {
		return c < 0
	}
	return a.Name < b.Name
}

func compareBytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

func compareInt64s(a, b []int64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// ToVec returns the deduplicated, sorted names as a plain slice.
func (c *Collection) ToVec() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Name
	}
	return out
}

// Len is the number of deduplicated records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Record returns the record at index i.
func (c *Collection) Record(i int) Record {
	return c.records[i]
}

// SetWeights overrides the weight table the composite similarity blends
// its five structural sub-scores with, replacing DefaultWeights. Callers
// must do this before the first Similarity/Group call: the memoization
// cache is keyed on index pairs alone, so a weight change after warming
// the cache would silently return scores under the old table.
func (c *Collection) SetWeights(w WeightTable) {
	c.weights = w
}

// Name satisfies orchestrator.Source.
func (c *Collection) Name(i int) string {
	return c.records[i].Name
}

// SkeletonKey satisfies orchestrator.Source: it returns a string built
// from the skeleton style and part sizes, used to bucket structurally
// identical records into the same shard.
func (c *Collection) SkeletonKey(i int) string {
	r := c.records[i]
	return string(r.SkeletonStyle) + ":" + int64sKey(r.SkeletonSizes)
}

func int64sKey(sizes []int64) string {
	var b bytes.Buffer
	for _, s := range sizes {
		b.WriteString(strconv.FormatInt(s, 10))
		b.WriteByte(',')
	}
	return b.String()
}

// Similarity satisfies orchestrator.Source: it returns the memoized
// composite similarity between records i and j, short-circuiting the
// identity case (which also sidesteps the 0/0 the composite formula
// would hit comparing two empty-name records — impossible here since
// dedup leaves at most one empty-name record in the collection).
func (c *Collection) Similarity(i, j int) float64 {
	if i == j {
		return 1.0
	}
	k := pairKey{i, j}
	if k.lo > k.hi {
		k.lo, k.hi = k.hi, k.lo
	}
	if v, ok := c.cache.Get(k); ok {
		return v
	}
	score, _ := SimilarityWithWeights(c.records[i], c.records[j], c.weights)
	c.cache.Add(k, score)
	return score
}

// PairwiseDetail returns the full sub-score breakdown for records i and
// j, bypassing the memoization cache since callers asking for the
// breakdown are typically inspecting one pair, not scanning many.
func (c *Collection) PairwiseDetail(i, j int) Detail {
	_, d := SimilarityWithWeights(c.records[i], c.records[j], c.weights)
	return d
}

// Group clusters the collection under the given threshold, minimum group
// size, and efficiency mode, returning dense group ids mapped to their
// member names.
func (c *Collection) Group(thresholdSim float64, minGroupMembers int, mode orchestrator.Mode) map[int][]string {
	return c.GroupWithProgress(thresholdSim, minGroupMembers, mode, nil)
}

// GroupWithProgress is Group with an optional progress callback invoked
// as shards finish (0-100).
func (c *Collection) GroupWithProgress(thresholdSim float64, minGroupMembers int, mode orchestrator.Mode, onProgress func(float64)) map[int][]string {
	return orchestrator.Cluster(c, thresholdSim, minGroupMembers, mode, onProgress)
}

// GroupAccurate clusters in Accurate mode: full proximity-ordered leader
// scans, no per-shard prefilter.
func (c *Collection) GroupAccurate(thresholdSim float64, minGroupMembers int) map[int][]string {
	return c.Group(thresholdSim, minGroupMembers, orchestrator.Accurate)
}

// GroupNormal clusters in Normal mode: full proximity scans with a
// per-shard low-frequency prefilter before the merge.
func (c *Collection) GroupNormal(thresholdSim float64, minGroupMembers int) map[int][]string {
	return c.Group(thresholdSim, minGroupMembers, orchestrator.Normal)
}

// GroupQuick clusters in Quick mode: capped-probe leaf scans, no
// prefilter.
func (c *Collection) GroupQuick(thresholdSim float64, minGroupMembers int) map[int][]string {
	return c.Group(thresholdSim, minGroupMembers, orchestrator.Quick)
}

// GroupRapid clusters in Rapid mode: capped-probe leaf scans plus the
// per-shard low-frequency prefilter — the fastest, least exhaustive mode.
func (c *Collection) GroupRapid(thresholdSim float64, minGroupMembers int) map[int][]string {
	return c.Group(thresholdSim, minGroupMembers, orchestrator.Rapid)
}
