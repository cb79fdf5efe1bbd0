package model

// CatalogItem is the flat per-row projection of one backend catalog
// entry as used by the admin mirror. A nil ID marks a locally added row
// the backend has not seen yet; the server decides insert-vs-update.
type CatalogItem struct {
	ID            *int64  `json:"id"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Source        string  `json:"source,omitempty"`
	Date          string  `json:"date,omitempty"`
	PriceMaterial float64 `json:"price_material"`
	PriceLabor    float64 `json:"price_labor"`
}

// Alias is a learned mapping from a free-text query to a catalog item.
// Aliases are created exclusively by manual candidate resolution.
type Alias struct {
	Query    string `json:"alias"`
	ItemName string `json:"item_name"`
	ID       int64  `json:"id"`
	ItemID   int64  `json:"item_id"`
}

// PricePoint is one sample of an item's price-over-time series.
type PricePoint struct {
	Date          string  `json:"date"`
	Source        string  `json:"source"`
	PriceMaterial float64 `json:"price_material"`
	PriceLabor    float64 `json:"price_labor"`
}

// ItemDetails is the full detail view of a catalog item.
type ItemDetails struct {
	Name          string       `json:"name"`
	Unit          string       `json:"unit"`
	Sources       []PricePoint `json:"sources,omitempty"`
	ID            int64        `json:"id"`
	PriceMaterial float64      `json:"price_material"`
	PriceLabor    float64      `json:"price_labor"`
}

// SearchHit is one result of a name search.
type SearchHit struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// ItemHistory pairs a resolved item name with its price series.
type ItemHistory struct {
	ItemName string       `json:"itemName"`
	History  []PricePoint `json:"history"`
}

// LaborSuggestion is a labor item the backend recommends for a material.
type LaborSuggestion struct {
	Name       string  `json:"name"`
	ID         int64   `json:"id"`
	PriceLabor float64 `json:"price_labor"`
}

// BackendStatus is the liveness probe result. Offline is reported as a
// value, never as an error.
type BackendStatus struct {
	Status    string `json:"status"`
	ItemCount int    `json:"item_count,omitempty"`
}
