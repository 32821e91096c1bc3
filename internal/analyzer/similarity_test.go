package analyzer

import "testing"

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}

func TestSimilarityE2(t *testing.T) {
	a := NewRecord("u0j2e9u1s2h8l91")
	b := NewRecord("t9x1h8y0b7g6f42")

	total, d := Similarity(a, b)

	wantItemList := 0.23419743655039468
	if !almostEqual(d.ItemList, wantItemList) {
		t.Fatalf("item-list similarity = %v, want %v", d.ItemList, wantItemList)
	}

	want := 0.6072663004595803
	if !almostEqual(total, want) {
		t.Fatalf("Similarity total = %v, want %v", total, want)
	}
}

func TestSimilarityE3(t *testing.T) {
	a := NewRecord("0ubutz22ae22")
	b := NewRecord("2ubutz10ae57")

	total, d := Similarity(a, b)

	want := 0.7883572886890006
	if !almostEqual(total, want) {
		t.Fatalf("Similarity total = %v, want %v", total, want)
	}

	checks := map[string]struct{ got, want float64 }{
		"sim_len":         {d.Length, 1.0},
		"sim_item_amount": {d.ItemAmount, 1.0},
		"sim_skel_style":  {d.SkeletonStyle, 1.0},
		"sim_skel_sizes":  {d.SkeletonPartSizeList, 1.0},
		"sim_jaro":        {d.JaroDistance, 0.7222222222222223},
	}
	for name, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s = %v, want %v", name, c.got, c.want)
		}
	}
	if d.EditDistance != 5 {
		t.Errorf("sim_edit_distance = %d, want 5", d.EditDistance)
	}
}

func TestSimilaritySelfIsOne(t *testing.T) {
	for _, name := range []string{"a1f6", "aa11ff66", "b2c", "a1f55", "1", "plain", "u0j2e9u1s2h8l91"} {
		r := NewRecord(name)
		total, _ := Similarity(r, r)
		if !almostEqual(total, 1.0) {
			t.Errorf("Similarity(%q,%q) = %v, want 1", name, name, total)
		}
	}
}
