package spikecount

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLabels(t *testing.T) {

	path := filepath.Join(t.TempDir(), "labels.txt")
	err := os.WriteFile(path, []byte("Pot\n\n  Wheat Spike  \r\n"), 0o644)

	if err != nil {
		t.Fatal(err)
	}

	labels, err := LoadLabels(path)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(labels) != 2 || labels[0] != "Pot" || labels[1] != "Wheat Spike" {
		t.Errorf("unexpected labels %q", labels)
	}
}

func TestLoadLabelsMissing(t *testing.T) {

	_, err := LoadLabels(filepath.Join(t.TempDir(), "missing.txt"))

	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLabelFor(t *testing.T) {

	labels := Labels{"Pot", "Wheat Spike"}

	tests := []struct {
		id   int
		name string
		ok   bool
	}{
		{0, "Pot", true},
		{1, "Wheat Spike", true},
		{2, "", false},
		{-1, "", false},
	}

	for _, tc := range tests {
		name, ok := labels.LabelFor(tc.id)

		if name != tc.name || ok != tc.ok {
			t.Errorf("LabelFor(%d) = %q, %v; want %q, %v", tc.id, name, ok, tc.name, tc.ok)
		}
	}

	if got := labels.IndexOf("Wheat Spike"); got != 1 {
		t.Errorf("IndexOf = %d, want 1", got)
	}

	if got := labels.IndexOf("Weed"); got != -1 {
		t.Errorf("IndexOf = %d, want -1", got)
	}
}
