package analyzer

import "github.com/dontbeproud/accountcluster/internal/metrics"

// Similarity computes the composite similarity of a and b using
// DefaultWeights, returning the total score and its sub-score detail.
func Similarity(a, b Record) (float64, Detail) {
	return SimilarityWithWeights(a, b, DefaultWeights)
}

// SimilarityWithWeights computes the composite similarity of a and b
// under an explicit weight table.
//
// The total is a weighted average of the structural score and the
// Jaro-Winkler similarity: the structural score is weighted by the edit
// distance and Jaro-Winkler by the average byte length, so the structural
// score dominates when the edit distance is large relative to the average
// length, and Jaro-Winkler dominates as average length grows relative to
// edit distance.
func SimilarityWithWeights(a, b Record, w WeightTable) (float64, Detail) {
	var d Detail

	d.Length = metrics.DigitSimilarity(a.Length, b.Length)
	d.ItemAmount = metrics.DigitSimilarity(a.ItemAmount, b.ItemAmount)
	d.SkeletonStyle = metrics.VectorSimilarity(styleAsInts(a.SkeletonStyle), styleAsInts(b.SkeletonStyle))
	d.SkeletonPartSizeList = metrics.VectorSimilarity(a.SkeletonSizes, b.SkeletonSizes)
	d.ItemList = metrics.NestedSimilarity(runsAsInts(a.Runs), runsAsInts(b.Runs))
	d.EditDistance = int64(metrics.EditDistance(a.Name, b.Name))
	d.JaroDistance = metrics.JaroWinkler(a.Name, b.Name, metrics.PrefixWeight(a.Name, b.Name))

	d.Score = (d.Length*float64(w.Length) +
		d.ItemList*float64(w.ItemList) +
		d.ItemAmount*float64(w.ItemAmount) +
		d.SkeletonStyle*float64(w.SkeletonStyle) +
		d.SkeletonPartSizeList*float64(w.SkeletonPartSizes)) / float64(w.sum())

	avgLen := float64((a.Length + b.Length) / 2)

	d.TotalScore = (d.Score*float64(d.EditDistance) + avgLen*d.JaroDistance) / (avgLen + float64(d.EditDistance))

	return d.TotalScore, d
}
