package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNamesFromFileSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.txt")
	content := "a1f6\n\n  a1f55  \n\nb2c\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	names, err := LoadNamesFromFile(path)
	if err != nil {
		t.Fatalf("LoadNamesFromFile: %v", err)
	}

	want := []string{"a1f6", "a1f55", "b2c"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadNamesDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.list")
	if err := os.WriteFile(path, []byte("x1y2\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	names, err := LoadNames(path)
	if err != nil {
		t.Fatalf("LoadNames: %v", err)
	}
	if len(names) != 1 || names[0] != "x1y2" {
		t.Fatalf("got %v, want [x1y2]", names)
	}
}
