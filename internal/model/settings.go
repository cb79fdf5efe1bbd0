package model

// Default settings applied whenever a stored value is absent.
const (
	DefaultThreshold      = 0.4
	DefaultDescColumn     = "C"
	DefaultMaterialColumn = "I"
	DefaultLaborColumn    = "J"
)

// Settings is the per-user pricing configuration. It is resolved once at
// an operation's entry point and threaded through explicitly; nothing
// reads ambient configuration mid-operation.
type Settings struct {
	DescColumn     string
	MaterialColumn string
	LaborColumn    string
	Threshold      float64
}

// DefaultSettings returns the hard-coded defaults.
func DefaultSettings() Settings {
	return Settings{
		Threshold:      DefaultThreshold,
		DescColumn:     DefaultDescColumn,
		MaterialColumn: DefaultMaterialColumn,
		LaborColumn:    DefaultLaborColumn,
	}
}

// Column returns the configured column letter for a price kind.
func (s Settings) Column(kind PriceKind) string {
	if kind == KindLabor {
		return s.LaborColumn
	}
	return s.MaterialColumn
}
