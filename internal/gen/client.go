// Package gen talks to the Gemini API for the three text stages (concept,
// image prompt, SEO) and to Imagen for artwork generation.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/logging"
)

// Client wraps a genai client for the generation stages of the pipeline.
// The genai client owns no long-lived resources, so Client needs no Close.
type Client struct {
	client *genai.Client
	cfg    config.GenConfig
	logger *logging.Logger
}

// NewClient creates a generation client.
func NewClient(ctx context.Context, cfg config.GenConfig, logger *logging.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required (set gen.api_key or GEMINI_API_KEY)")
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		cfg:    cfg,
		logger: logger.WithStage("gen"),
	}, nil
}

// GenerateConcept asks the text model for a listing concept. brief is the
// operator's free-form direction; feedback carries the rejection note from a
// previous attempt, if any.
func (c *Client) GenerateConcept(ctx context.Context, brief, feedback string) (listing.Concept, error) {
	prompt := buildConceptPrompt(brief, feedback)

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return listing.Concept{}, errors.NewGenerationError("concept generation failed", err).
			WithStage("concept").WithCapability("gemini")
	}

	concept, err := parseConcept(raw)
	if err != nil {
		return listing.Concept{}, errors.NewGenerationError("model returned an unusable concept", err).
			WithStage("concept").WithCapability("gemini")
	}

	if err := listing.ValidateAspectRatio("concept", concept.AspectRatio); err != nil {
		return listing.Concept{}, err
	}

	c.logger.Info("concept generated",
		"style", concept.Style,
		"theme", concept.Theme,
		"aspect_ratio", concept.AspectRatio)
	return concept, nil
}

// GenerateImagePrompt turns an approved concept into a detailed artwork
// prompt. The concept's aspect ratio is carried onto the returned record.
func (c *Client) GenerateImagePrompt(ctx context.Context, concept listing.Concept) (listing.PromptRecord, error) {
	if err := listing.ValidateAspectRatio("prompt", concept.AspectRatio); err != nil {
		return listing.PromptRecord{}, err
	}

	prompt := buildImagePromptRequest(concept)
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.TextModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(c.cfg.Temperature)),
		})
	if err != nil {
		return listing.PromptRecord{}, errors.NewGenerationError("image prompt generation failed", err).
			WithStage("prompt").WithCapability("gemini")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return listing.PromptRecord{}, errors.NewGenerationError("model returned an empty image prompt", nil).
			WithStage("prompt").WithCapability("gemini")
	}

	c.logger.Debug("image prompt generated", "length", len(text))
	return listing.NewPromptRecord(concept, text), nil
}

// GenerateSEO produces Etsy listing copy for an approved concept. The result
// is clamped to Etsy's tag limits before being returned.
func (c *Client) GenerateSEO(ctx context.Context, concept listing.Concept, imagePrompt string) (listing.SEORecord, error) {
	prompt := buildSEOPrompt(concept, imagePrompt)

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return listing.SEORecord{}, errors.NewGenerationError("SEO generation failed", err).
			WithStage("seo").WithCapability("gemini")
	}

	var rec listing.SEORecord
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &rec); err != nil {
		return listing.SEORecord{}, errors.NewGenerationError("model returned unusable SEO copy", err).
			WithStage("seo").WithCapability("gemini")
	}
	if rec.Title == "" {
		return listing.SEORecord{}, errors.NewGenerationError("model returned SEO copy without a title", nil).
			WithStage("seo").WithCapability("gemini")
	}

	rec.Clamp()
	c.logger.Info("SEO copy generated", "title", rec.Title, "tags", len(rec.Tags))
	return rec, nil
}

// Generate renders artwork for the prompt record via Imagen and stages the
// image file under outDir.
func (c *Client) Generate(ctx context.Context, rec listing.PromptRecord, outDir string) (listing.GeneratedImage, error) {
	if err := listing.ValidateAspectRatio("image", rec.AspectRatio); err != nil {
		return listing.GeneratedImage{}, err
	}

	ratio := c.apiRatio(rec.AspectRatio)
	imgCfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    ratio,
	}
	if c.cfg.Seed != 0 {
		imgCfg.Seed = genai.Ptr(int32(c.cfg.Seed))
	}
	if c.cfg.GuidanceScale != 0 {
		imgCfg.GuidanceScale = genai.Ptr(float32(c.cfg.GuidanceScale))
	}
	resp, err := c.client.Models.GenerateImages(ctx, c.cfg.ImageModel, rec.Prompt, imgCfg)
	if err != nil {
		return listing.GeneratedImage{}, errors.NewGenerationError("image generation failed", err).
			WithStage("image").WithCapability("imagen")
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return listing.GeneratedImage{}, errors.NewGenerationError("model returned no images", nil).
			WithStage("image").WithCapability("imagen")
	}

	img := resp.GeneratedImages[0].Image
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return listing.GeneratedImage{}, errors.NewPersistenceError("failed to create images directory", err).
			WithStage("image").WithPath(outDir)
	}

	name := uuid.NewString() + extensionForMIME(img.MIMEType)
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, img.ImageBytes, 0o644); err != nil {
		return listing.GeneratedImage{}, errors.NewPersistenceError("failed to write generated image", err).
			WithStage("image").WithPath(path)
	}

	c.logger.Info("artwork generated",
		"path", path,
		"aspect_ratio", rec.AspectRatio,
		"api_ratio", ratio,
		"bytes", len(img.ImageBytes))
	return listing.GeneratedImage{Path: path, AspectRatio: rec.AspectRatio}, nil
}

// Discard removes a rejected artwork file. Missing files are not an error;
// the gate treats discard as best-effort either way.
func (c *Client) Discard(_ context.Context, img listing.GeneratedImage) error {
	if img.Path == "" {
		return nil
	}
	err := os.Remove(img.Path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// generateJSON runs a text completion constrained to a JSON response.
func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.TextModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr(float32(c.cfg.Temperature)),
		})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// apiRatio maps a pipeline aspect ratio to the provider's ratio string.
func (c *Client) apiRatio(a listing.AspectRatio) string {
	if a == listing.AspectLandscape {
		return c.cfg.LandscapeRatio
	}
	return c.cfg.PortraitRatio
}
