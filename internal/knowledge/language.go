package knowledge

// Language identifies one of the catalog's supported locales.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Bengali Language = "bn"
	Telugu  Language = "te"
	Marathi Language = "mr"
	Tamil   Language = "ta"
)

// DefaultLanguage is the display fallback when a scenario has no localized
// text for the requested language. Search never falls back: a scenario
// without content in the active language simply does not match.
const DefaultLanguage = English

var supported = map[Language]bool{
	English: true,
	Hindi:   true,
	Bengali: true,
	Telugu:  true,
	Marathi: true,
	Tamil:   true,
}

// ParseLanguage maps a request parameter to a supported language,
// defaulting to English for unknown or empty values.
func ParseLanguage(s string) Language {
	if supported[Language(s)] {
		return Language(s)
	}
	return DefaultLanguage
}
