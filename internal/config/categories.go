package config

// CategoryWeights orders command categories in help listings. Unknown
// categories sort after these, alphabetically.
var CategoryWeights = map[string]int{
	"General":     0,
	"Suggestions": 10,
	"Settings":    50,
	"Owner":       90,
}

// CategoryWeight returns the sort weight of a category.
func CategoryWeight(category string) int {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return 100
}
