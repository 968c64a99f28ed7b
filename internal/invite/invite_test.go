package invite

import (
	"strings"
	"testing"
)

func TestNewCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		code := NewCode()

		if len(code) != CodeLength {
			t.Fatalf("code %q: length %d, want %d", code, len(code), CodeLength)
		}
		if code != strings.ToUpper(code) {
			t.Errorf("code %q is not uppercase", code)
		}
		for _, ambiguous := range []string{"0", "O", "1", "I", "L"} {
			if strings.Contains(code, ambiguous) {
				t.Errorf("code %q contains ambiguous character %q", code, ambiguous)
			}
		}
		for _, ch := range code {
			if !strings.ContainsRune(Alphabet, ch) {
				t.Errorf("code %q contains %q, not in alphabet", code, ch)
			}
		}
		seen[code] = true
	}

	// 1000 draws from a 32^8 space should never collide.
	if len(seen) != 1000 {
		t.Errorf("expected 1000 distinct codes, got %d", len(seen))
	}
}
