// Package analyzer bundles an account name with its structural
// decomposition and computes the weighted composite similarity between
// two names, the quantity the clustering engine thresholds against.
package analyzer

import "github.com/dontbeproud/accountcluster/internal/decompose"

// WeightTable holds the non-negative integer weights the composite score
// blends its five structural sub-scores with.
type WeightTable struct {
	Length            int64 `json:"length"`
	ItemList          int64 `json:"item_list"`
	ItemAmount        int64 `json:"item_amount"`
	SkeletonStyle     int64 `json:"skeleton_style"`
	SkeletonPartSizes int64 `json:"skeleton_part_sizes"`
}

// DefaultWeights matches the analyzer's historical defaults.
var DefaultWeights = WeightTable{
	Length:            1,
	ItemList:          8,
	ItemAmount:        3,
	SkeletonStyle:     7,
	SkeletonPartSizes: 9,
}

func (w WeightTable) sum() int64 {
	return w.Length + w.ItemList + w.ItemAmount + w.SkeletonStyle + w.SkeletonPartSizes
}

// Detail carries the composite score's seven sub-scores alongside the
// total, for callers that want the breakdown (the dashboard, tests).
type Detail struct {
	TotalScore           float64
	Score                float64
	JaroDistance         float64
	EditDistance         int64
	Length               float64
	ItemList             float64
	ItemAmount           float64
	SkeletonStyle        float64
	SkeletonPartSizeList float64
}

// Record bundles a name with its decomposition: byte length, runs, item
// amount, skeleton style and skeleton size list. Records are immutable
// after construction.
type Record struct {
	Name          string
	Length        int64
	Runs          [][]rune
	ItemAmount    int64
	SkeletonStyle []byte
	SkeletonSizes []int64
}

// NewRecord decomposes name into a Record.
func NewRecord(name string) Record {
	runs, style, sizes := decompose.Decompose(name)

	sizes64 := make([]int64, len(sizes))
	for i, s := range sizes {
		sizes64[i] = int64(s)
	}

	return Record{
		Name:          name,
		Length:        int64(len(name)),
		Runs:          runs,
		ItemAmount:    int64(len(runs)),
		SkeletonStyle: style,
		SkeletonSizes: sizes64,
	}
}

func styleAsInts(style []byte) []int64 {
	out := make([]int64, len(style))
	for i, b := range style {
		out[i] = int64(b)
	}
	return out
}

func runsAsInts(runs [][]rune) [][]int64 {
	out := make([][]int64, len(runs))
	for i, r := range runs {
		row := make([]int64, len(r))
		for j, c := range r {
			row[j] = int64(c)
		}
		out[i] = row
	}
	return out
}
