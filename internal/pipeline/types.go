package pipeline

import (
	"context"

	"github.com/orizehavi/listingforge/internal/approval"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/store"
)

// State represents a listing run's position in the stage sequence. Each
// state is entered only after the preceding stage fully completed.
type State string

const (
	// StateConceptPending indicates concept generation and approval is in progress.
	StateConceptPending State = "concept_pending"

	// StateConceptApproved indicates a human approved the concept.
	StateConceptApproved State = "concept_approved"

	// StatePromptReady indicates the image prompt has been generated.
	StatePromptReady State = "prompt_ready"

	// StateImagePending indicates artwork generation and approval is in progress.
	StateImagePending State = "image_pending"

	// StateImageApproved indicates a human approved the artwork.
	StateImageApproved State = "image_approved"

	// StateSEOReady indicates listing copy has been generated.
	StateSEOReady State = "seo_ready"

	// StatePrintsReady indicates all print-size assets have been rendered.
	StatePrintsReady State = "prints_ready"

	// StateMockupsReady indicates mockup rendering finished.
	StateMockupsReady State = "mockups_ready"

	// StateListingComplete indicates the listing directory has been organized.
	StateListingComplete State = "listing_complete"

	// StateAborted indicates the run stopped on an error. Partially written
	// output is left in place for inspection.
	StateAborted State = "aborted"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true if this state represents a final state.
func (s State) IsTerminal() bool {
	return s == StateListingComplete || s == StateAborted
}

// TextGenerator produces the text artifacts of a run.
type TextGenerator interface {
	GenerateConcept(ctx context.Context, brief, feedback string) (listing.Concept, error)
	GenerateImagePrompt(ctx context.Context, concept listing.Concept) (listing.PromptRecord, error)
	GenerateSEO(ctx context.Context, concept listing.Concept, imagePrompt string) (listing.SEORecord, error)
}

// ImageGenerator produces and discards artwork files. Generated files are
// staged under outDir, which the runner scopes to the current run.
type ImageGenerator interface {
	Generate(ctx context.Context, rec listing.PromptRecord, outDir string) (listing.GeneratedImage, error)
	Discard(ctx context.Context, img listing.GeneratedImage) error
}

// PrintPreparer renders the print-size asset set for an approved artwork.
type PrintPreparer interface {
	Prepare(ctx context.Context, img listing.GeneratedImage, outDir string) ([]listing.PrintAsset, error)
}

// MockupRenderer renders lifestyle mockups for an approved artwork.
type MockupRenderer interface {
	Render(ctx context.Context, img listing.GeneratedImage, outDir string) ([]listing.MockupAsset, error)
}

// Persister stages and organizes run artifacts. *store.Store satisfies it.
type Persister interface {
	StagingDir(runID, kind string) string
	SaveConcept(runID string, concept listing.Concept) (string, error)
	SaveJSON(path string, v any) error
	Organize(assets store.RunAssets) (string, error)
}

// Presenter is the human decision surface for the two approval gates.
type Presenter interface {
	ApproveConcept(ctx context.Context, concept listing.Concept, attempt int) (approval.Decision, error)
	ApproveImage(ctx context.Context, img listing.GeneratedImage, attempt int) (approval.Decision, error)
}

// Config holds required dependencies for creating a Runner.
type Config struct {
	Text      TextGenerator
	Images    ImageGenerator
	Prints    PrintPreparer
	Mockups   MockupRenderer
	Store     Persister
	Presenter Presenter
}

// Result describes a completed run.
type Result struct {
	RunID  string
	State  State
	Dir    string
	Record listing.ListingRecord
}
