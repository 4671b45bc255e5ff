package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orizehavi/listingforge/internal/listing"
)

func keyPress(m approveModel, key string) approveModel {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(approveModel)
}

func TestApproveModelApproves(t *testing.T) {
	m := newApproveModel("Approve this concept?", "body", 1)
	m = keyPress(m, "y")
	if !m.done || !m.decision.Approved {
		t.Errorf("after 'y': done=%v approved=%v", m.done, m.decision.Approved)
	}
}

func TestApproveModelRejectWithNote(t *testing.T) {
	m := newApproveModel("Approve this artwork?", "body", 2)
	m = keyPress(m, "n")
	if !m.noting {
		t.Fatal("'n' should open the rejection note input")
	}

	for _, r := range "darker" {
		m = keyPress(m, string(r))
	}
	m = keyPress(m, "enter")

	if !m.done || m.decision.Approved {
		t.Fatalf("after note submit: done=%v approved=%v", m.done, m.decision.Approved)
	}
	if m.decision.Feedback != "darker" {
		t.Errorf("feedback = %q, want %q", m.decision.Feedback, "darker")
	}
}

func TestApproveModelRejectWithoutNote(t *testing.T) {
	m := newApproveModel("Approve this artwork?", "body", 1)
	m = keyPress(m, "n")
	m = keyPress(m, "esc")
	if !m.done || m.decision.Approved || m.decision.Feedback != "" {
		t.Errorf("esc should reject with no note: %+v", m.decision)
	}
}

func TestApproveModelAbort(t *testing.T) {
	m := newApproveModel("Approve this concept?", "body", 1)
	m = keyPress(m, "q")
	if !m.aborted {
		t.Error("'q' should abort the prompt")
	}
}

func TestApproveModelViewShowsAttempt(t *testing.T) {
	m := newApproveModel("Approve this concept?", "body", 3)
	if !strings.Contains(m.View(), "attempt 3") {
		t.Error("view should mention the attempt number on retries")
	}
}

func TestPlainPresenterApprove(t *testing.T) {
	var out strings.Builder
	p := NewPlainPresenter(strings.NewReader("y\n"), &out)

	d, err := p.ApproveConcept(context.Background(), listing.Concept{
		Style: "minimalist", Theme: "ocean", AspectRatio: listing.AspectPortrait,
	}, 1)
	if err != nil {
		t.Fatalf("ApproveConcept failed: %v", err)
	}
	if !d.Approved {
		t.Error("'y' should approve")
	}
	if !strings.Contains(out.String(), "ocean") {
		t.Error("prompt should show the concept theme")
	}
}

func TestPlainPresenterRejectWithNote(t *testing.T) {
	var out strings.Builder
	p := NewPlainPresenter(strings.NewReader("n\nmore contrast\n"), &out)

	d, err := p.ApproveImage(context.Background(),
		listing.GeneratedImage{Path: "/tmp/a.png", AspectRatio: listing.AspectLandscape}, 1)
	if err != nil {
		t.Fatalf("ApproveImage failed: %v", err)
	}
	if d.Approved {
		t.Error("'n' should reject")
	}
	if d.Feedback != "more contrast" {
		t.Errorf("feedback = %q", d.Feedback)
	}
}

func TestPlainPresenterReprompts(t *testing.T) {
	var out strings.Builder
	p := NewPlainPresenter(strings.NewReader("maybe\ny\n"), &out)

	d, err := p.ApproveConcept(context.Background(), listing.Concept{}, 1)
	if err != nil {
		t.Fatalf("ApproveConcept failed: %v", err)
	}
	if !d.Approved {
		t.Error("second answer should have approved")
	}
	if !strings.Contains(out.String(), "Please answer y or n") {
		t.Error("invalid answer should reprompt")
	}
}

func TestAutoApprovePresenter(t *testing.T) {
	p := AutoApprovePresenter{}
	d, err := p.ApproveConcept(context.Background(), listing.Concept{}, 1)
	if err != nil || !d.Approved {
		t.Errorf("auto approve concept: %v %v", d, err)
	}
	d, err = p.ApproveImage(context.Background(), listing.GeneratedImage{}, 1)
	if err != nil || !d.Approved {
		t.Errorf("auto approve image: %v %v", d, err)
	}
}
