// Package localized implements the dynamic localized field model: the set of
// supported app languages is admin-managed data, so every multilingual entity
// derives its per-language field names, table columns and form fields at
// runtime from the current language list.
package localized

// Language is one active app language.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Fallback returns the fixed two-language default used when the live language
// list cannot be loaded or is empty. Dependent schema builders never operate
// on a zero-language set.
func Fallback() []Language {
	return []Language{
		{Code: "en", Label: "English"},
		{Code: "km", Label: "Khmer"},
	}
}
