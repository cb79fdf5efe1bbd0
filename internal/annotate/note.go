// Package annotate renders match results into grid cells: the numeric
// price, a confidence-derived fill and a structured note. The note is
// the only persistent per-cell metadata channel the host offers, so the
// backend item id travels inside it after a literal "🔗 ID:" token.
package annotate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"cenar/internal/model"
)

// Fill colors. A cleared fill is the empty string.
const (
	// FillLowConfidence marks machine matches below the confidence
	// boundary.
	FillLowConfidence = "#fff3cd"
	// FillManual marks human-verified candidate picks, distinct from the
	// algorithmic highlight.
	FillManual = "#d4edda"
)

// LowConfidenceThreshold is the fill boundary. A score of exactly 0.6
// gets no fill; the tie break is deliberate.
const LowConfidenceThreshold = 0.6

// LaborMissNote is written into the labor cell when the bulk response
// has no labor match for a scanned row.
const LaborMissNote = "🔧 Práce nenalezena v DB"

// placeholder substitutes any absent optional note field.
const placeholder = "N/A"

var idPattern = regexp.MustCompile(`🔗 ID: (\d+)`)

// Icon returns the note icon for a price kind.
func Icon(kind model.PriceKind) string {
	if kind == model.KindLabor {
		return "🔧"
	}
	return "📦"
}

// HighlightFor maps a match score to a fill: below the boundary the
// low-confidence color, otherwise none.
func HighlightFor(score float64) string {
	if score < LowConfidenceThreshold {
		return FillLowConfidence
	}
	return ""
}

// MatchNote renders the structured note for an algorithmic match.
func MatchNote(kind model.PriceKind, m model.MatchResult) string {
	return fmt.Sprintf("%s %s\n📊 Shoda: %d%%\n🏢 Zdroj: %s\n📅 Datum: %s\n🔗 ID: %s",
		Icon(kind),
		orPlaceholder(m.OriginalName),
		int(math.Round(m.MatchScore*100)),
		orPlaceholder(m.Source),
		orPlaceholder(m.Date),
		idOrPlaceholder(m.ItemID),
	)
}

// CandidateNote renders the structured note for a manually resolved
// candidate. The second line signals human verification.
func CandidateNote(kind model.PriceKind, c model.Candidate) string {
	return fmt.Sprintf("%s %s\n✅ Manuální výběr (100%%)\n🏢 Zdroj: %s\n📅 Datum: %s\n🔗 ID: %s",
		Icon(kind),
		orPlaceholder(c.Item),
		orPlaceholder(c.Source),
		orPlaceholder(c.Date),
		idOrPlaceholder(c.ID),
	)
}

// LaborInsertNote annotates a labor row inserted from a suggestion.
func LaborInsertNote(itemID int64, date string) string {
	return fmt.Sprintf("🔧 Montážní položka z DB\n🔗 ID: %d\n📅 Datum: %s", itemID, date)
}

// ItemID recovers the backend item id from a note by extracting the
// digits after the literal ID token. This regex is the single,
// authoritative recovery path: a cleared or rewritten note severs the
// identity link for good.
func ItemID(note string) (int64, bool) {
	match := idPattern.FindStringSubmatch(note)
	if match == nil {
		return 0, false
	}

	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HasItemID reports whether a note carries the ID token at all.
func HasItemID(note string) bool {
	return idPattern.MatchString(note)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func idOrPlaceholder(id int64) string {
	if id < 0 {
		return placeholder
	}
	return strconv.FormatInt(id, 10)
}
