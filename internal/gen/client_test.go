package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/listing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.GenConfig{}, nil)
	if err == nil {
		t.Fatal("NewClient should fail without an API key")
	}
}

func TestDiscardRemovesArtworkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Client{}
	if err := c.Discard(context.Background(), listing.GeneratedImage{Path: path}); err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected artwork file should be removed")
	}

	// A second discard of the same image is not an error.
	if err := c.Discard(context.Background(), listing.GeneratedImage{Path: path}); err != nil {
		t.Errorf("Discard of a missing file = %v, want nil", err)
	}
	if err := c.Discard(context.Background(), listing.GeneratedImage{}); err != nil {
		t.Errorf("Discard of an empty handle = %v, want nil", err)
	}
}

func TestAPIRatioMapsOrientationToProviderString(t *testing.T) {
	c := &Client{cfg: config.GenConfig{PortraitRatio: "3:4", LandscapeRatio: "4:3"}}

	if got := c.apiRatio(listing.AspectPortrait); got != "3:4" {
		t.Errorf("apiRatio(portrait) = %q, want 3:4", got)
	}
	if got := c.apiRatio(listing.AspectLandscape); got != "4:3" {
		t.Errorf("apiRatio(landscape) = %q, want 4:3", got)
	}
}
