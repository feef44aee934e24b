package models

// CategoryAll is the catch-all pseudo-category. It is only valid as a
// catalog filter, never as a submission category.
const CategoryAll = "All"

// Categories is the fixed set of group categories.
var Categories = []string{
	"Sohbet",
	"Teknoloji",
	"Yazılım",
	"Oyun",
	"Kripto",
	"Finans",
	"Eğitim",
	"Müzik",
	"Spor",
	"Haber",
}

// IsValidCategory reports whether name is a submittable category.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
