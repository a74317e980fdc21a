package knowledge

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed scenarios.json
var catalogJSON []byte

// ErrScenarioNotFound is returned by GetByID for unknown scenario ids.
// Callers treat it as "offer the generated-guidance fallback", not as a
// fatal error.
var ErrScenarioNotFound = errors.New("scenario not found")

// EmergencyLevel classifies how urgent professional help is for a scenario.
type EmergencyLevel string

const (
	LevelHigh   EmergencyLevel = "high"
	LevelMedium EmergencyLevel = "medium"
	LevelLow    EmergencyLevel = "low"
)

// Scenario is one first-aid knowledge-base entry. Text fields are keyed by
// language; a scenario is not required to carry every language.
type Scenario struct {
	ID             string                `json:"id"`
	Title          map[Language]string   `json:"title"`
	Category       map[Language]string   `json:"category"`
	Icon           string                `json:"icon"`
	Steps          map[Language][]string `json:"steps"`
	Dos            map[Language][]string `json:"dos"`
	Donts          map[Language][]string `json:"donts"`
	EmergencyLevel EmergencyLevel        `json:"emergencyLevel"`
}

// LocalizedTitle returns the title in lang, falling back to the default
// language when the scenario has no text for lang.
func (s *Scenario) LocalizedTitle(lang Language) string {
	if t, ok := s.Title[lang]; ok && t != "" {
		return t
	}
	return s.Title[DefaultLanguage]
}

// LocalizedCategory returns the category in lang with default-language
// fallback.
func (s *Scenario) LocalizedCategory(lang Language) string {
	if c, ok := s.Category[lang]; ok && c != "" {
		return c
	}
	return s.Category[DefaultLanguage]
}

// LocalizedSteps returns the instruction steps in lang with
// default-language fallback.
func (s *Scenario) LocalizedSteps(lang Language) []string {
	if steps, ok := s.Steps[lang]; ok && len(steps) > 0 {
		return steps
	}
	return s.Steps[DefaultLanguage]
}

// LocalizedDos returns the do-list in lang with default-language fallback.
func (s *Scenario) LocalizedDos(lang Language) []string {
	if dos, ok := s.Dos[lang]; ok && len(dos) > 0 {
		return dos
	}
	return s.Dos[DefaultLanguage]
}

// LocalizedDonts returns the don't-list in lang with default-language
// fallback.
func (s *Scenario) LocalizedDonts(lang Language) []string {
	if donts, ok := s.Donts[lang]; ok && len(donts) > 0 {
		return donts
	}
	return s.Donts[DefaultLanguage]
}

// Store is the static first-aid catalog. It is loaded once at startup and
// immutable afterwards, shared read-only across all sessions.
type Store struct {
	scenarios []Scenario
	byID      map[string]*Scenario
}

// NewStore loads the embedded catalog.
func NewStore() (*Store, error) {
	return NewStoreFromJSON(catalogJSON)
}

// NewStoreFromJSON builds a catalog from raw JSON. Scenario order in the
// input is the catalog order returned by GetAll.
func NewStoreFromJSON(data []byte) (*Store, error) {
	var scenarios []Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse scenario catalog: %w", err)
	}

	byID := make(map[string]*Scenario, len(scenarios))
	for i := range scenarios {
		if scenarios[i].ID == "" {
			return nil, fmt.Errorf("scenario at index %d has no id", i)
		}
		if _, dup := byID[scenarios[i].ID]; dup {
			return nil, fmt.Errorf("duplicate scenario id %q", scenarios[i].ID)
		}
		byID[scenarios[i].ID] = &scenarios[i]
	}

	return &Store{scenarios: scenarios, byID: byID}, nil
}

// GetAll returns every scenario in catalog order. The returned slice is
// shared; callers must not modify it.
func (s *Store) GetAll() []Scenario {
	return s.scenarios
}

// GetByID looks up one scenario. Returns ErrScenarioNotFound when the id
// is unknown.
func (s *Store) GetByID(id string) (*Scenario, error) {
	sc, ok := s.byID[id]
	if !ok {
		return nil, ErrScenarioNotFound
	}
	return sc, nil
}

// Len reports the number of scenarios in the catalog.
func (s *Store) Len() int {
	return len(s.scenarios)
}
