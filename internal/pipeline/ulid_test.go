package pipeline

import (
	"strings"
	"testing"
)

func TestEncode_KnownValues(t *testing.T) {
	var zero [16]byte
	if got := encode(zero); got != strings.Repeat("0", 26) {
		t.Errorf("zero: got %q", got)
	}

	var ones [16]byte
	for i := range ones {
		ones[i] = 0xFF
	}
	if got := encode(ones); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("all ones: got %q", got)
	}

	var one [16]byte
	one[15] = 1
	if got := encode(one); got != strings.Repeat("0", 25)+"1" {
		t.Errorf("one: got %q", got)
	}
}

func TestGenerateULID_SortedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26 chars, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if id <= prev {
			t.Fatalf("ids not increasing: %q after %q", id, prev)
		}
		prev = id
	}
}
