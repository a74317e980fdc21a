package knowledge

import "strings"

// Filter returns the scenarios whose title, category or joined step text in
// the given language contains the query, case-insensitively. It is a stable
// filter, not a ranked search: catalog order is preserved. An empty or
// whitespace-only query returns the input unchanged.
//
// Matching is per-language. A scenario with no localized content for lang
// fails closed: it is excluded, never a panic and never matched through
// another language.
func Filter(scenarios []Scenario, query string, lang Language) []Scenario {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return scenarios
	}

	matched := make([]Scenario, 0, len(scenarios))
	for i := range scenarios {
		if scenarioMatches(&scenarios[i], q, lang) {
			matched = append(matched, scenarios[i])
		}
	}
	return matched
}

func scenarioMatches(s *Scenario, q string, lang Language) bool {
	if strings.Contains(strings.ToLower(s.Title[lang]), q) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Category[lang]), q) {
		return true
	}
	steps := strings.Join(s.Steps[lang], " ")
	return strings.Contains(strings.ToLower(steps), q)
}
