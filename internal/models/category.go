package models

// Categories is the fixed set of product categories. The dashboard
// distribution always reports every entry, zero-filled when absent.
var Categories = []string{
	"eletrônicos",
	"alimentos",
	"bebidas",
	"vestuário",
	"limpeza",
	"outros",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
