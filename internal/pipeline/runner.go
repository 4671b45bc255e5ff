package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/orizehavi/listingforge/internal/approval"
	pkgerrors "github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/logging"
	"github.com/orizehavi/listingforge/internal/store"
)

// Runner executes listing runs.
//
// A run moves through the fixed stage sequence (concept → prompt → image →
// SEO → prints → mockups → persist), with human approval gates after concept
// and image generation. A Runner holds no per-run state and is safe to use
// from concurrent batch workers.
type Runner struct {
	cfg  Config
	rcfg runnerConfig
}

// NewRunner creates a Runner with the given collaborators and options.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if cfg.Text == nil {
		return nil, errors.New("pipeline: Text is required")
	}
	if cfg.Images == nil {
		return nil, errors.New("pipeline: Images is required")
	}
	if cfg.Prints == nil {
		return nil, errors.New("pipeline: Prints is required")
	}
	if cfg.Mockups == nil {
		return nil, errors.New("pipeline: Mockups is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("pipeline: Store is required")
	}
	if cfg.Presenter == nil {
		return nil, errors.New("pipeline: Presenter is required")
	}

	rc := &runnerConfig{}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.logger == nil {
		rc.logger = logging.NopLogger()
	}

	return &Runner{cfg: cfg, rcfg: *rc}, nil
}

// run tracks the state of one in-flight listing run.
type run struct {
	id     string
	state  State
	logger *logging.Logger
	hook   func(runID string, state State)
}

func (r *run) setState(s State) {
	r.state = s
	r.logger.Info("state changed", "state", s)
	if r.hook != nil {
		r.hook(r.id, s)
	}
}

// conceptHandle is the persisted output of the concept approval gate.
type conceptHandle struct {
	concept listing.Concept
	path    string
}

// Run executes one listing run to completion. brief is the operator's
// free-form direction for the concept stage; it may be empty.
//
// On any error the run transitions to StateAborted and whatever was written
// so far is left in place for inspection.
func (p *Runner) Run(ctx context.Context, brief string) (*Result, error) {
	id := uuid.NewString()
	rn := &run{
		id:     id,
		logger: p.rcfg.logger.WithRun(id),
		hook:   p.rcfg.stateHook,
	}
	rn.logger.Info("run started", "brief", brief)

	result, err := p.runStages(ctx, rn, brief)
	if err != nil {
		rn.setState(StateAborted)
		rn.logger.Error("run aborted", "error", err, "stage", pkgerrors.Stage(err))
		return nil, err
	}

	rn.logger.Info("run complete", "dir", result.Dir)
	return result, nil
}

func (p *Runner) runStages(ctx context.Context, rn *run, brief string) (*Result, error) {
	// Concept stage: generate, present, persist on approval.
	rn.setState(StateConceptPending)
	ch, err := p.runConceptGate(ctx, rn, brief)
	if err != nil {
		return nil, err
	}
	concept := ch.concept
	rn.setState(StateConceptApproved)

	// Prompt stage. The concept's aspect ratio must survive verbatim.
	promptRec, err := p.cfg.Text.GenerateImagePrompt(ctx, concept)
	if err != nil {
		return nil, err
	}
	if promptRec.AspectRatio != concept.AspectRatio {
		return nil, pkgerrors.NewContractViolation("prompt", "aspect_ratio", string(promptRec.AspectRatio))
	}
	promptPath := filepath.Join(p.cfg.Store.StagingDir(rn.id, "concept"), "prompt.json")
	if err := p.cfg.Store.SaveJSON(promptPath, promptRec); err != nil {
		return nil, err
	}
	rn.setState(StatePromptReady)

	// Image stage: generate, present, keep on approval.
	rn.setState(StateImagePending)
	img, err := p.runImageGate(ctx, rn, promptRec)
	if err != nil {
		return nil, err
	}
	if img.AspectRatio != promptRec.AspectRatio {
		return nil, pkgerrors.NewContractViolation("image", "aspect_ratio", string(img.AspectRatio))
	}
	rn.setState(StateImageApproved)

	// SEO stage.
	seo, err := p.cfg.Text.GenerateSEO(ctx, concept, promptRec.Prompt)
	if err != nil {
		return nil, err
	}
	rn.setState(StateSEOReady)

	// Print preparation stage.
	prints, err := p.cfg.Prints.Prepare(ctx, img, p.cfg.Store.StagingDir(rn.id, "prints"))
	if err != nil {
		return nil, err
	}
	rn.setState(StatePrintsReady)

	// Mockup stage.
	mockups, err := p.cfg.Mockups.Render(ctx, img, p.cfg.Store.StagingDir(rn.id, "mockups"))
	if err != nil {
		return nil, err
	}
	rn.setState(StateMockupsReady)

	// Persistence stage: record plus organized listing directory.
	record := listing.ListingRecord{
		ID:        rn.id,
		CreatedAt: time.Now().UTC(),
		Concept:   concept,
		Assets: listing.ListingAssets{
			Original: img.Path,
			Prints:   prints,
			Mockups:  mockups,
		},
		Metadata: listing.ListingMetadata{
			AspectRatio: concept.AspectRatio,
			Title:       seo.Title,
			Description: seo.Description,
			Tags:        seo.Tags,
		},
	}

	metaPath := filepath.Join(p.cfg.Store.StagingDir(rn.id, "metadata"), "listing.json")
	if err := p.cfg.Store.SaveJSON(metaPath, record); err != nil {
		return nil, err
	}

	dir, err := p.cfg.Store.Organize(store.RunAssets{
		ListingName: seo.Title,
		RunID:       rn.id,
		Files: map[string][]string{
			"concept":  {ch.path, promptPath},
			"original": {img.Path},
			"prints":   printPaths(prints),
			"mockups":  mockupPaths(mockups),
			"metadata": {metaPath},
		},
		Cleanup: p.rcfg.cleanup,
	})
	if err != nil {
		return nil, err
	}
	record.Dir = dir
	rn.setState(StateListingComplete)

	return &Result{
		RunID:  rn.id,
		State:  StateListingComplete,
		Dir:    dir,
		Record: record,
	}, nil
}

// runConceptGate wires the concept stage into an approval gate. Rejected
// concepts need no discard; they only ever existed in memory.
func (p *Runner) runConceptGate(ctx context.Context, rn *run, brief string) (conceptHandle, error) {
	gate, err := approval.NewGate(
		func(ctx context.Context, req approval.Request) (listing.Concept, error) {
			return p.cfg.Text.GenerateConcept(ctx, brief, req.Feedback)
		},
		p.cfg.Presenter.ApproveConcept,
		func(_ context.Context, c listing.Concept) (conceptHandle, error) {
			path, err := p.cfg.Store.SaveConcept(rn.id, c)
			if err != nil {
				return conceptHandle{}, err
			}
			return conceptHandle{concept: c, path: path}, nil
		},
		approval.WithMaxAttempts[listing.Concept, conceptHandle](p.rcfg.maxAttempts),
		approval.WithLogger[listing.Concept, conceptHandle](rn.logger.WithStage("concept")),
	)
	if err != nil {
		return conceptHandle{}, err
	}
	return gate.Run(ctx)
}

// runImageGate wires the image stage into an approval gate. Rejected artwork
// files are deleted; a rejection note is appended to the prompt for the next
// attempt.
func (p *Runner) runImageGate(ctx context.Context, rn *run, rec listing.PromptRecord) (listing.GeneratedImage, error) {
	gate, err := approval.NewGate(
		func(ctx context.Context, req approval.Request) (listing.GeneratedImage, error) {
			attempt := rec
			if req.Feedback != "" {
				attempt.Prompt = rec.Prompt + "\n\nAdjustments: " + req.Feedback
			}
			return p.cfg.Images.Generate(ctx, attempt, p.cfg.Store.StagingDir(rn.id, "images"))
		},
		p.cfg.Presenter.ApproveImage,
		func(_ context.Context, img listing.GeneratedImage) (listing.GeneratedImage, error) {
			// The approved file is already on disk in the staging area.
			return img, nil
		},
		approval.WithDiscard[listing.GeneratedImage, listing.GeneratedImage](p.cfg.Images.Discard),
		approval.WithMaxAttempts[listing.GeneratedImage, listing.GeneratedImage](p.rcfg.maxAttempts),
		approval.WithLogger[listing.GeneratedImage, listing.GeneratedImage](rn.logger.WithStage("image")),
	)
	if err != nil {
		return listing.GeneratedImage{}, err
	}
	return gate.Run(ctx)
}

func printPaths(assets []listing.PrintAsset) []string {
	paths := make([]string, len(assets))
	for i, a := range assets {
		paths[i] = a.Path
	}
	return paths
}

func mockupPaths(assets []listing.MockupAsset) []string {
	paths := make([]string, len(assets))
	for i, a := range assets {
		paths[i] = a.Path
	}
	return paths
}
