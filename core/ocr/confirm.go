package ocr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Confirmer decides which candidates become identifiers.
type Confirmer interface {
	Confirm(ctx context.Context, candidates []Candidate) ([]string, error)
}

// ThresholdConfirmer accepts candidates read with enough confidence and
// without misread repair.
type ThresholdConfirmer struct {
	MinConfidence float64
}

// Accepts reports whether the candidate needs no human review.
func (t ThresholdConfirmer) Accepts(c Candidate) bool {
	return !c.Corrected && c.Confidence >= t.MinConfidence
}

// Split separates auto-accepted identifiers from candidates needing review.
func (t ThresholdConfirmer) Split(candidates []Candidate) ([]string, []Candidate) {
	accepted := make([]string, 0, len(candidates))
	var review []Candidate
	for _, c := range candidates {
		if t.Accepts(c) {
			accepted = append(accepted, c.Identifier)
		} else {
			review = append(review, c)
		}
	}
	return accepted, review
}

// Confirm returns the auto-accepted identifiers and drops the rest.
func (t ThresholdConfirmer) Confirm(ctx context.Context, candidates []Candidate) ([]string, error) {
	accepted, _ := t.Split(candidates)
	return accepted, ctx.Err()
}

// PromptConfirmer asks on a terminal for every candidate below the threshold.
// An empty answer or "y" accepts, "n" rejects and anything else is taken as
// the corrected identifier.
type PromptConfirmer struct {
	In        io.Reader
	Out       io.Writer
	Pattern   *regexp.Regexp
	Threshold ThresholdConfirmer
	// AcceptAll skips the prompt entirely.
	AcceptAll bool
}

// Confirm keeps the order of candidates. Input ending early rejects the
// remaining uncertain candidates.
func (p *PromptConfirmer) Confirm(ctx context.Context, candidates []Candidate) ([]string, error) {
	if p.AcceptAll {
		out := make([]string, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, c.Identifier)
		}
		return out, nil
	}

	scanner := bufio.NewScanner(p.In)
	out := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.Threshold.Accepts(c) {
			out = append(out, c.Identifier)
			continue
		}

		id, ok := p.ask(scanner, c)
		if ok {
			out = append(out, id)
		}
	}

	return out, scanner.Err()
}

func (p *PromptConfirmer) ask(scanner *bufio.Scanner, c Candidate) (string, bool) {
	for {
		fmt.Fprintf(p.Out, "%s (read %q, %.0f%%, %s) [Y/n/correction]: ", c.Identifier, c.Raw, c.Confidence, c.Source)
		if !scanner.Scan() {
			fmt.Fprintln(p.Out)
			return "", false
		}

		answer := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(answer) {
		case "", "y", "yes", "j", "ja":
			return c.Identifier, true
		case "n", "no", "nein":
			return "", false
		}

		corrected := strings.ToUpper(answer)
		if p.Pattern == nil || p.Pattern.MatchString(corrected) {
			return corrected, true
		}
		fmt.Fprintf(p.Out, "%q does not look like an identifier\n", answer)
	}
}
