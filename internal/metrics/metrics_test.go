package metrics

import "testing"

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}

func TestEditDistancePinned(t *testing.T) {
	if got := EditDistance("asdsf", "asdsq"); got != 1 {
		t.Fatalf("EditDistance = %d, want 1", got)
	}
}

func TestJaroWinklerPinned(t *testing.T) {
	pw := PrefixWeight("asdsf", "asdsq")
	if !almostEqual(pw, 1.0/6.0) {
		t.Fatalf("PrefixWeight = %v, want 1/6", pw)
	}
	got := JaroWinkler("asdsf", "asdsq", pw)
	want := 0.9555555555555556
	if !almostEqual(got, want) {
		t.Fatalf("JaroWinkler = %v, want %v", got, want)
	}
}

func TestDigitSimilarity(t *testing.T) {
	for _, x := range []int64{0, 1, 5, 124, 99999} {
		if got := DigitSimilarity(x, x); !almostEqual(got, 1.0) {
			t.Errorf("DigitSimilarity(%d,%d) = %v, want 1", x, x, got)
		}
	}

	a, b := DigitSimilarity(124, 127), DigitSimilarity(127, 124)
	if !almostEqual(a, b) {
		t.Fatalf("DigitSimilarity not symmetric: %v vs %v", a, b)
	}

	want := 0.9762813290793214
	if !almostEqual(a, want) {
		t.Fatalf("DigitSimilarity(124,127) = %v, want %v", a, want)
	}
}

func TestDiffListScorePinned(t *testing.T) {
	got := DiffListScore([]int64{5, 7, 9})
	want := 4.0227272727272725
	if !almostEqual(got, want) {
		t.Fatalf("DiffListScore = %v, want %v", got, want)
	}
}

func TestRawVectorScorePinned(t *testing.T) {
	got := rawVectorScore([]int64{5, 7, 9}, []int64{6, 7, 8})
	want := 44.5000000000001
	if !almostEqual(got, want) {
		t.Fatalf("rawVectorScore = %v, want %v", got, want)
	}
}

func TestVectorSimilarityPinned(t *testing.T) {
	got := VectorSimilarity([]int64{5, 7, 9}, []int64{6, 7, 8})
	want := 0.5855263157894742
	if !almostEqual(got, want) {
		t.Fatalf("VectorSimilarity = %v, want %v", got, want)
	}
}

func TestVectorSimilaritySelf(t *testing.T) {
	for _, v := range [][]int64{{1}, {1, 2, 3}, {9, 9, 9, 9}} {
		if got := VectorSimilarity(v, v); !almostEqual(got, 1.0) {
			t.Errorf("VectorSimilarity(%v,%v) = %v, want 1", v, v, got)
		}
	}
}

func TestNestedScorePinned(t *testing.T) {
	a := [][]int64{{5, 7, 9}, {97, 99}}
	b := [][]int64{{6, 7, 8}, {98, 100}}

	got := rawNestedScore(a, b)
	want := 6.436403508772047
	if !almostEqual(got, want) {
		t.Fatalf("rawNestedScore = %v, want %v", got, want)
	}

	simGot := NestedSimilarity(a, b)
	simWant := 0.4951079622132306
	if !almostEqual(simGot, simWant) {
		t.Fatalf("NestedSimilarity = %v, want %v", simGot, simWant)
	}
}

func TestNestedSimilaritySelf(t *testing.T) {
	v := [][]int64{{1, 2}, {3, 4, 5}, {6}}
	if got := NestedSimilarity(v, v); !almostEqual(got, 1.0) {
		t.Fatalf("NestedSimilarity(v,v) = %v, want 1", got)
	}
}
