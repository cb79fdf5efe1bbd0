// Package model defines the core domain models used throughout the application.
package model

// PriceKind selects which price of a catalog item an operation works with.
type PriceKind string

// Price kind constants. The wire values match the backend's "type" field.
const (
	KindMaterial PriceKind = "material"
	KindLabor    PriceKind = "labor"
)

// Valid reports whether the kind is one the backend understands.
func (k PriceKind) Valid() bool {
	return k == KindMaterial || k == KindLabor
}

// MatchResult is the backend's answer for a single description.
// It is ephemeral: rendered into the grid and discarded, never stored.
type MatchResult struct {
	OriginalName string      `json:"original_name"`
	Source       string      `json:"source"`
	Date         string      `json:"date"`
	Price        float64     `json:"price"`
	MatchScore   float64     `json:"match_score"`
	ItemID       int64       `json:"item_id"`
	Candidates   []Candidate `json:"candidates,omitempty"`
}

// Ambiguous reports whether the backend offered alternatives worth a
// manual decision.
func (m MatchResult) Ambiguous() bool {
	return len(m.Candidates) > 0
}

// Candidate is one backend-suggested item offered for manual
// disambiguation. Selecting one is an authoritative override.
type Candidate struct {
	Item          string  `json:"item"`
	Source        string  `json:"source"`
	Date          string  `json:"date"`
	ID            int64   `json:"id"`
	PriceMaterial float64 `json:"price_material"`
	PriceLabor    float64 `json:"price_labor"`
}

// Price returns the candidate price for the given kind.
func (c Candidate) Price(kind PriceKind) float64 {
	if kind == KindLabor {
		return c.PriceLabor
	}
	return c.PriceMaterial
}
