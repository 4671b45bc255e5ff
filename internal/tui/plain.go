package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/orizehavi/listingforge/internal/approval"
	"github.com/orizehavi/listingforge/internal/listing"
)

// PlainPresenter asks approval questions over plain line-based I/O. It is
// the fallback for terminals where the interactive prompt cannot run, and it
// keeps the presenters testable.
type PlainPresenter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainPresenter creates a PlainPresenter reading decisions from in and
// writing prompts to out.
func NewPlainPresenter(in io.Reader, out io.Writer) *PlainPresenter {
	return &PlainPresenter{in: bufio.NewReader(in), out: out}
}

// ApproveConcept prints the concept summary and reads a y/n answer.
func (p *PlainPresenter) ApproveConcept(ctx context.Context, concept listing.Concept, attempt int) (approval.Decision, error) {
	fmt.Fprintf(p.out, "\n%s\n", formatConcept(concept))
	return p.ask(ctx, "Approve this concept?", attempt)
}

// ApproveImage prints the artwork location and reads a y/n answer.
func (p *PlainPresenter) ApproveImage(ctx context.Context, img listing.GeneratedImage, attempt int) (approval.Decision, error) {
	fmt.Fprintf(p.out, "\nArtwork file: %s (%s)\n", img.Path, img.AspectRatio)
	return p.ask(ctx, "Approve this artwork?", attempt)
}

func (p *PlainPresenter) ask(ctx context.Context, question string, attempt int) (approval.Decision, error) {
	if err := ctx.Err(); err != nil {
		return approval.Decision{}, err
	}
	if attempt > 1 {
		fmt.Fprintf(p.out, "%s (attempt %d) [y/n]: ", question, attempt)
	} else {
		fmt.Fprintf(p.out, "%s [y/n]: ", question)
	}

	for {
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return approval.Decision{}, fmt.Errorf("failed to read approval answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return approval.Decision{Approved: true}, nil
		case "n", "no":
			fmt.Fprint(p.out, "Note for the next attempt (optional): ")
			note, err := p.in.ReadString('\n')
			if err != nil && note == "" {
				// A missing note is fine; the rejection still counts.
				return approval.Decision{Approved: false}, nil
			}
			return approval.Decision{Approved: false, Feedback: strings.TrimSpace(note)}, nil
		default:
			fmt.Fprint(p.out, "Please answer y or n: ")
		}
	}
}

// AutoApprovePresenter approves every candidate without asking. Used by
// unattended batch runs.
type AutoApprovePresenter struct{}

// ApproveConcept always approves.
func (AutoApprovePresenter) ApproveConcept(context.Context, listing.Concept, int) (approval.Decision, error) {
	return approval.Decision{Approved: true}, nil
}

// ApproveImage always approves.
func (AutoApprovePresenter) ApproveImage(context.Context, listing.GeneratedImage, int) (approval.Decision, error) {
	return approval.Decision{Approved: true}, nil
}
