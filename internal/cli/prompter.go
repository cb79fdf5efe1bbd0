package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cenar/internal/common"
	"cenar/internal/model"
)

// Prompter asks the user the few questions the workflow needs: yes/no
// confirmations, the typed reset phrase and candidate disambiguation.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter over the given streams. Nil arguments
// default to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question. Only "y"/"yes"/"a"/"ano" count as
// assent; everything else, including plain Enter, declines.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes", "a", "ano":
		return true, nil
	default:
		return false, nil
	}
}

// ReadPhrase prompts for a free-text answer, for example the typed
// reset confirmation word.
func (p *Prompter) ReadPhrase(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

// PickCandidate renders a numbered candidate list and returns the chosen
// one. Entering nothing or "0" cancels with ErrNoSelection.
func (p *Prompter) PickCandidate(ctx context.Context, description string, kind model.PriceKind, candidates []model.Candidate) (model.Candidate, error) {
	if len(candidates) == 0 {
		return model.Candidate{}, common.NewUserError("Backend nenabídl žádné alternativy.", common.ErrNoSelection)
	}

	var b strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, c.Item)
		fmt.Fprintf(&b, "    %s\n", SubtleStyle.Render(fmt.Sprintf("%.2f Kč · %s · %s", c.Price(kind), c.Source, c.Date)))
	}
	b.WriteString(SubtleStyle.Render("[0] Zrušit"))

	title := fmt.Sprintf("Možnosti pro „%s“", description)
	if _, err := fmt.Fprintln(p.writer, RenderBox(title, b.String())); err != nil {
		return model.Candidate{}, fmt.Errorf("failed to write candidate list: %w", err)
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Volba")); err != nil {
			return model.Candidate{}, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return model.Candidate{}, err
		}
		if line == "" || line == "0" {
			return model.Candidate{}, common.NewUserError("Výběr zrušen.", common.ErrNoSelection)
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(candidates) {
			if _, werr := fmt.Fprintln(p.writer, FormatWarning(fmt.Sprintf("Zadejte číslo 1–%d.", len(candidates)))); werr != nil {
				return model.Candidate{}, fmt.Errorf("failed to write retry hint: %w", werr)
			}
			continue
		}

		return candidates[n-1], nil
	}
}
