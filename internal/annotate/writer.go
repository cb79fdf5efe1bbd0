package annotate

import (
	"cenar/internal/grid"
	"cenar/internal/model"
)

// WriteMatch renders an algorithmic match into the target cell: price,
// confidence fill and structured note, in that order.
func WriteMatch(g grid.Grid, sheet string, row, col int, kind model.PriceKind, m model.MatchResult) error {
	if err := g.SetValue(sheet, row, col, m.Price); err != nil {
		return err
	}
	if err := g.SetFill(sheet, row, col, HighlightFor(m.MatchScore)); err != nil {
		return err
	}
	return g.SetNote(sheet, row, col, MatchNote(kind, m))
}

// WriteCandidate renders a manually picked candidate with the maximal
// confidence fill reserved for human decisions.
func WriteCandidate(g grid.Grid, sheet string, row, col int, kind model.PriceKind, c model.Candidate) error {
	if err := g.SetValue(sheet, row, col, c.Price(kind)); err != nil {
		return err
	}
	if err := g.SetFill(sheet, row, col, FillManual); err != nil {
		return err
	}
	return g.SetNote(sheet, row, col, CandidateNote(kind, c))
}

// WriteLaborMiss zeroes a labor cell whose description the backend
// could not match, clearing any stale fill.
func WriteLaborMiss(g grid.Grid, sheet string, row, col int) error {
	if err := g.SetValue(sheet, row, col, 0); err != nil {
		return err
	}
	if err := g.SetFill(sheet, row, col, ""); err != nil {
		return err
	}
	return g.SetNote(sheet, row, col, LaborMissNote)
}
