package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewReportShapesGroupsAndCounts(t *testing.T) {
	groups := map[int][]string{
		0: {"a1f6", "a1f55"},
		1: {"b2c"},
	}

	rep := NewReport("r1", 3, groups, "quick", 1.5, "2026-07-30 10:00:00")

	if rep.TotalNames != 3 {
		t.Fatalf("TotalNames = %d, want 3", rep.TotalNames)
	}
	if rep.GroupCount != 2 {
		t.Fatalf("GroupCount = %d, want 2", rep.GroupCount)
	}
	if rep.Status != "finished" {
		t.Fatalf("Status = %q, want finished", rep.Status)
	}

	seen := make(map[int]int)
	for _, g := range rep.Groups {
		seen[g.ID] = len(g.Members)
	}
	if seen[0] != 2 || seen[1] != 1 {
		t.Fatalf("unexpected group shapes: %v", seen)
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	rep := NewReport("r2", 2, map[int][]string{0: {"x1", "y2"}}, "accurate", 0.1, "2026-07-30 10:00:00")

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	if err := ExportJSON(rep, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var roundTripped Report
	if err := json.Unmarshal(data, &roundTripped); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if roundTripped.ID != rep.ID || roundTripped.GroupCount != rep.GroupCount {
		t.Fatalf("round trip mismatch: got %+v, want %+v", roundTripped, rep)
	}
}
