package mockup

import (
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
)

func writeTestArtwork(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artwork.png")
	img := imaging.New(60, 80, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("failed to write test artwork: %v", err)
	}
	return path
}

func TestRenderLocalFallbackProducesAllTemplates(t *testing.T) {
	artwork := writeTestArtwork(t)
	outDir := filepath.Join(t.TempDir(), "mockups")

	r := NewRenderer(config.MockupConfig{}, nil) // no API key: local compositor
	assets, err := r.Render(context.Background(),
		listing.GeneratedImage{Path: artwork, AspectRatio: listing.AspectPortrait}, outDir)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	templates := listing.Templates(listing.AspectPortrait)
	if len(assets) != len(templates) {
		t.Fatalf("Render produced %d assets, want %d", len(assets), len(templates))
	}
	for i, asset := range assets {
		if asset.Template != templates[i] {
			t.Errorf("asset[%d].Template = %s, want %s", i, asset.Template, templates[i])
		}
		if !strings.HasPrefix(asset.Template, "portrait-") {
			t.Errorf("template %q is not from the portrait family", asset.Template)
		}
		if _, err := os.Stat(asset.Path); err != nil {
			t.Errorf("mockup file %s was not written: %v", asset.Path, err)
		}
	}
}

func TestRenderSkipsFailedTemplates(t *testing.T) {
	artwork := writeTestArtwork(t)

	// Fail exactly one template; the others succeed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var body renderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("bad render request: %v", err)
		}
		if req.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing API key header")
		}
		if body.Template == "landscape-gallery-wall" {
			http.Error(w, "template unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("fake-png-bytes"))
	}))
	defer srv.Close()

	r := NewRenderer(config.MockupConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)
	assets, err := r.Render(context.Background(),
		listing.GeneratedImage{Path: artwork, AspectRatio: listing.AspectLandscape},
		filepath.Join(t.TempDir(), "mockups"))
	if err != nil {
		t.Fatalf("Render failed despite partial success: %v", err)
	}

	want := len(listing.Templates(listing.AspectLandscape)) - 1
	if len(assets) != want {
		t.Fatalf("Render produced %d assets, want %d (one template skipped)", len(assets), want)
	}
	for _, asset := range assets {
		if asset.Template == "landscape-gallery-wall" {
			t.Error("failed template should have been skipped")
		}
	}
}

func TestRenderFailsOnlyWhenAllTemplatesFail(t *testing.T) {
	artwork := writeTestArtwork(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "out of credits", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	r := NewRenderer(config.MockupConfig{APIKey: "test-key", BaseURL: srv.URL}, nil)
	_, err := r.Render(context.Background(),
		listing.GeneratedImage{Path: artwork, AspectRatio: listing.AspectPortrait},
		filepath.Join(t.TempDir(), "mockups"))
	if !errors.IsGenerationFailure(err) {
		t.Fatalf("Render error = %v, want generation failure", err)
	}
	if got := errors.Stage(err); got != "mockups" {
		t.Errorf("Stage(err) = %q, want mockups", got)
	}
}

func TestRenderRejectsInvalidAspectRatio(t *testing.T) {
	r := NewRenderer(config.MockupConfig{}, nil)
	_, err := r.Render(context.Background(),
		listing.GeneratedImage{Path: "unused.png", AspectRatio: listing.AspectRatio("")},
		t.TempDir())
	if !errors.IsContractViolation(err) {
		t.Fatalf("Render error = %v, want contract violation", err)
	}
}

func TestSceneForKnowsBothFamilies(t *testing.T) {
	for _, ratio := range []listing.AspectRatio{listing.AspectPortrait, listing.AspectLandscape} {
		for _, template := range listing.Templates(ratio) {
			if _, err := sceneFor(template); err != nil {
				t.Errorf("sceneFor(%q) failed: %v", template, err)
			}
		}
	}
	if _, err := sceneFor("portrait-unknown-scene"); err == nil {
		t.Error("sceneFor should reject an unknown template")
	}
}
