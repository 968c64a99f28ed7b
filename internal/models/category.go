package models

// Category describes one entry of the fixed expense category catalog.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// Categories is the closed set of expense categories. Display names are
// the Spanish strings the product ships with.
var Categories = []Category{
	{ID: "food", Name: "Comida y Restaurantes", Emoji: "🍔", Color: "#93C5FD"},
	{ID: "home", Name: "Casa y Hogar", Emoji: "🏠", Color: "#9CA3AF"},
	{ID: "transport", Name: "Transporte", Emoji: "🚗", Color: "#60A5FA"},
	{ID: "entertainment", Name: "Ocio y Entretenimiento", Emoji: "🎉", Color: "#D1D5DB"},
	{ID: "utilities", Name: "Servicios", Emoji: "💡", Color: "#3B82F6"},
	{ID: "shopping", Name: "Compras", Emoji: "🛒", Color: "#9CA3AF"},
	{ID: "health", Name: "Salud", Emoji: "🏥", Color: "#6B7280"},
	{ID: "other", Name: "Otros", Emoji: "📱", Color: "#9CA3AF"},
}

// fallbackColor is used when rendering an unknown category ID.
const fallbackColor = "#95A5A6"

// CategoryByID returns the category for the given ID. Unknown IDs fall
// back to the "other" display name and emoji with a neutral color.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Category{ID: id, Name: "Otros", Emoji: "📱", Color: fallbackColor}
}

// ValidCategory reports whether id is part of the fixed category set.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
