package store

import "testing"

func TestFingerprintDedupsAndIgnoresOrder(t *testing.T) {
	a := Fingerprint([]string{"b2c", "a1f6", "a1f6"})
	b := Fingerprint([]string{"a1f6", "b2c"})

	if a != b {
		t.Fatalf("fingerprints differ for same set in different order/with dupes: %q vs %q", a, b)
	}
}

func TestFingerprintDiffersForDifferentSets(t *testing.T) {
	a := Fingerprint([]string{"a1f6"})
	b := Fingerprint([]string{"a1f6", "b2c"})

	if a == b {
		t.Fatalf("fingerprints match for different sets")
	}
}
