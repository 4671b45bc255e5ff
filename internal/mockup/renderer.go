// Package mockup renders lifestyle mockups of an artwork file, one per scene
// template in the orientation's family. Templates are independent: a failed
// template is skipped, and rendering fails only when every template fails.
package mockup

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/logging"
)

// Renderer produces mockup images, either through the mockup rendering API
// or through a local compositor when no API key is configured.
type Renderer struct {
	cfg    config.MockupConfig
	client *http.Client
	logger *logging.Logger
}

// NewRenderer creates a Renderer from the mockup configuration.
func NewRenderer(cfg config.MockupConfig, logger *logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Renderer{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.WithStage("mockups"),
	}
}

// Render produces one mockup per template in the orientation's family and
// writes them into outDir. Individual template failures are logged and
// skipped; an error is returned only when no template succeeds.
func (r *Renderer) Render(ctx context.Context, img listing.GeneratedImage, outDir string) ([]listing.MockupAsset, error) {
	if err := listing.ValidateAspectRatio("mockups", img.AspectRatio); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.NewPersistenceError("failed to create mockups directory", err).
			WithStage("mockups").WithPath(outDir)
	}

	templates := listing.Templates(img.AspectRatio)
	assets := make([]listing.MockupAsset, 0, len(templates))
	var lastErr error

	for _, template := range templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, fmt.Sprintf("mockup_%s.png", template))
		var err error
		if r.cfg.APIKey != "" {
			err = r.renderRemote(ctx, template, img.Path, path)
		} else {
			err = r.renderLocal(template, img.Path, path)
		}
		if err != nil {
			lastErr = err
			r.logger.Warn("mockup template failed, skipping", "template", template, "error", err)
			continue
		}

		assets = append(assets, listing.MockupAsset{Template: template, Path: path})
		r.logger.Debug("mockup rendered", "template", template, "path", path)
	}

	if len(assets) == 0 {
		return nil, errors.NewGenerationError("all mockup templates failed", lastErr).
			WithStage("mockups").WithCapability("mockup-renderer")
	}

	r.logger.Info("mockups rendered",
		"count", len(assets),
		"templates", len(templates),
		"aspect_ratio", img.AspectRatio)
	return assets, nil
}

type renderRequest struct {
	Template string `json:"template"`
	Artwork  string `json:"artwork"` // base64 PNG/JPEG/WebP bytes
}

// renderRemote submits one template render to the mockup API and writes the
// returned image to outPath.
func (r *Renderer) renderRemote(ctx context.Context, template, artworkPath, outPath string) error {
	artwork, err := os.ReadFile(artworkPath)
	if err != nil {
		return fmt.Errorf("failed to read artwork: %w", err)
	}

	body, err := json.Marshal(renderRequest{
		Template: template,
		Artwork:  base64.StdEncoding.EncodeToString(artwork),
	})
	if err != nil {
		return fmt.Errorf("failed to encode render request: %w", err)
	}

	url := r.cfg.BaseURL + "/renders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", r.cfg.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("render request returned %d: %s", resp.StatusCode, snippet)
	}

	rendered, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read rendered mockup: %w", err)
	}
	if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write mockup: %w", err)
	}
	return nil
}
