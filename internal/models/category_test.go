package models

import "testing"

func TestCategoryByID(t *testing.T) {
	got := CategoryByID("food")
	if got.Name != "Comida y Restaurantes" || got.Emoji != "🍔" {
		t.Errorf("food category = %+v", got)
	}

	t.Run("unknown id falls back", func(t *testing.T) {
		got := CategoryByID("crypto")
		if got.ID != "crypto" {
			t.Errorf("ID = %q, want the requested id", got.ID)
		}
		if got.Name != "Otros" || got.Emoji != "📱" || got.Color != "#95A5A6" {
			t.Errorf("fallback = %+v", got)
		}
	})
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c.ID) {
			t.Errorf("ValidCategory(%q) = false", c.ID)
		}
	}
	for _, id := range []string{"", "crypto", "FOOD"} {
		if ValidCategory(id) {
			t.Errorf("ValidCategory(%q) = true", id)
		}
	}
}
