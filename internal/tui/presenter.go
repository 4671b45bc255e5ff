package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orizehavi/listingforge/internal/approval"
	"github.com/orizehavi/listingforge/internal/listing"
)

// ErrApprovalAborted is returned when the operator quits out of an approval
// prompt instead of deciding.
var ErrApprovalAborted = fmt.Errorf("approval aborted by operator")

// Presenter asks the operator to approve or reject pipeline artifacts
// through a full-screen-free bubbletea prompt.
type Presenter struct{}

// NewPresenter creates the interactive presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// ApproveConcept shows the concept summary and waits for a decision.
func (p *Presenter) ApproveConcept(ctx context.Context, concept listing.Concept, attempt int) (approval.Decision, error) {
	body := formatConcept(concept)
	return p.ask(ctx, "Approve this concept?", body, attempt)
}

// ApproveImage points the operator at the generated artwork file and waits
// for a decision.
func (p *Presenter) ApproveImage(ctx context.Context, img listing.GeneratedImage, attempt int) (approval.Decision, error) {
	body := fmt.Sprintf("Artwork file: %s\nOrientation:  %s\n\nOpen the file in an image viewer before deciding.",
		img.Path, img.AspectRatio)
	return p.ask(ctx, "Approve this artwork?", body, attempt)
}

func (p *Presenter) ask(ctx context.Context, title, body string, attempt int) (approval.Decision, error) {
	prog := tea.NewProgram(newApproveModel(title, body, attempt), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return approval.Decision{}, fmt.Errorf("approval prompt failed: %w", err)
	}

	m, ok := final.(approveModel)
	if !ok {
		return approval.Decision{}, fmt.Errorf("approval prompt returned unexpected model %T", final)
	}
	if m.aborted {
		return approval.Decision{}, ErrApprovalAborted
	}
	return m.decision, nil
}

func formatConcept(c listing.Concept) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Style:       %s\n", c.Style)
	fmt.Fprintf(&b, "Theme:       %s\n", c.Theme)
	fmt.Fprintf(&b, "Audience:    %s\n", c.TargetAudience)
	fmt.Fprintf(&b, "Orientation: %s", c.AspectRatio)
	return b.String()
}
