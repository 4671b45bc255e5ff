// Package internal contains integration tests that verify the pipeline
// packages work together correctly. These tests run a full listing through
// the real print preparer, the local mockup compositor, and the store, with
// only the generation backends and the human presenter stubbed out.
package internal

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/orizehavi/listingforge/internal/approval"
	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/mockup"
	"github.com/orizehavi/listingforge/internal/pipeline"
	"github.com/orizehavi/listingforge/internal/printprep"
	"github.com/orizehavi/listingforge/internal/store"
)

// fakeText supplies a fixed concept, prompt, and SEO record.
type fakeText struct {
	ratio listing.AspectRatio
}

func (f fakeText) GenerateConcept(_ context.Context, _, _ string) (listing.Concept, error) {
	return listing.Concept{
		Style:          "watercolor",
		Theme:          "desert sunrise",
		TargetAudience: "boho interiors",
		AspectRatio:    f.ratio,
	}, nil
}

func (f fakeText) GenerateImagePrompt(_ context.Context, c listing.Concept) (listing.PromptRecord, error) {
	return listing.NewPromptRecord(c, "a watercolor desert sunrise"), nil
}

func (f fakeText) GenerateSEO(_ context.Context, _ listing.Concept, _ string) (listing.SEORecord, error) {
	return listing.SEORecord{
		Title:       "Desert Sunrise Watercolor Print",
		Description: "Warm watercolor wall art, instant digital download.",
		Tags:        []string{"desert wall art", "watercolor print"},
	}, nil
}

// fakeImages renders a real PNG on each call so that the downstream image
// processing runs against actual pixels.
type fakeImages struct {
	calls int
}

func (f *fakeImages) Generate(_ context.Context, rec listing.PromptRecord, outDir string) (listing.GeneratedImage, error) {
	f.calls++
	w, h := 60, 80
	if rec.AspectRatio == listing.AspectLandscape {
		w, h = 80, 60
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return listing.GeneratedImage{}, err
	}
	img := imaging.New(w, h, color.NRGBA{R: 220, G: 140, B: 90, A: 255})
	path := filepath.Join(outDir, fmt.Sprintf("art_%d.png", f.calls))
	if err := imaging.Save(img, path); err != nil {
		return listing.GeneratedImage{}, err
	}
	return listing.GeneratedImage{Path: path, AspectRatio: rec.AspectRatio}, nil
}

func (f *fakeImages) Discard(_ context.Context, img listing.GeneratedImage) error {
	return os.Remove(img.Path)
}

// autoPresenter approves everything.
type autoPresenter struct{}

func (autoPresenter) ApproveConcept(context.Context, listing.Concept, int) (approval.Decision, error) {
	return approval.Decision{Approved: true}, nil
}

func (autoPresenter) ApproveImage(context.Context, listing.GeneratedImage, int) (approval.Decision, error) {
	return approval.Decision{Approved: true}, nil
}

// TestFullRunWithRealAssetProcessing drives one portrait listing through the
// real print preparer, local mockup compositor, and store.
func TestFullRunWithRealAssetProcessing(t *testing.T) {
	root := t.TempDir()

	st := store.NewStore(filepath.Join(root, "output"), nil)
	runner, err := pipeline.NewRunner(pipeline.Config{
		Text:      fakeText{ratio: listing.AspectPortrait},
		Images:    &fakeImages{},
		Prints:    printprep.NewPreparer(config.PrintPrepConfig{Scale: 2, FillCanvas: true, Sharpen: 1, Contrast: 10, Saturation: 5}, nil),
		Mockups:   mockup.NewRenderer(config.MockupConfig{}, nil),
		Store:     st,
		Presenter: autoPresenter{},
	}, pipeline.WithCleanupSources(true))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	res, err := runner.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != pipeline.StateListingComplete {
		t.Fatalf("final state = %s", res.State)
	}

	// The listing directory holds real rendered files for every category.
	entries := map[string]int{}
	for _, category := range []string{"concept", "original", "prints", "mockups", "metadata"} {
		files, err := os.ReadDir(filepath.Join(res.Dir, category))
		if err != nil {
			t.Fatalf("category %s missing: %v", category, err)
		}
		entries[category] = len(files)
	}
	if entries["prints"] != 5 {
		t.Errorf("prints category has %d files, want 5", entries["prints"])
	}
	if entries["mockups"] != len(listing.Templates(listing.AspectPortrait)) {
		t.Errorf("mockups category has %d files, want %d",
			entries["mockups"], len(listing.Templates(listing.AspectPortrait)))
	}
	if entries["original"] != 1 || entries["metadata"] != 1 {
		t.Errorf("original/metadata = %d/%d, want 1/1", entries["original"], entries["metadata"])
	}

	// Staged prints were cleaned up after organizing.
	if _, err := os.Stat(filepath.Join(root, "output", "staging", res.RunID)); !os.IsNotExist(err) {
		t.Error("staging tree should be pruned after cleanup")
	}
}
