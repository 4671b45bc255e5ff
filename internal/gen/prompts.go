package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/orizehavi/listingforge/internal/listing"
)

func buildConceptPrompt(brief, feedback string) string {
	var b strings.Builder
	b.WriteString(`You are an Etsy market analyst for digital wall art.
Propose ONE concept for a new wall art listing.

Respond with a JSON object with exactly these fields:
  "style": short art style name (e.g. "minimalist line art", "vintage botanical")
  "theme": the subject matter (e.g. "ocean waves at dawn")
  "target_audience": who would buy this
  "aspect_ratio": either "portrait" or "landscape", chosen to suit the composition

The aspect_ratio field must be exactly "portrait" or "landscape"; no other
value is accepted.`)

	if brief != "" {
		fmt.Fprintf(&b, "\n\nDirection from the shop owner: %s", brief)
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\n\nThe previous concept was rejected with this note, propose something different: %s", feedback)
	}
	return b.String()
}

func buildImagePromptRequest(c listing.Concept) string {
	return fmt.Sprintf(`You are a prompt engineer for an AI image model.
Write one detailed image generation prompt for a piece of wall art.

Style: %s
Theme: %s
Target audience: %s
Orientation: %s

Describe composition, color palette, lighting, and mood. The artwork must
work as printed wall decor: no text, no watermarks, no borders. Respond with
the prompt text only.`, c.Style, c.Theme, c.TargetAudience, c.AspectRatio)
}

func buildSEOPrompt(c listing.Concept, imagePrompt string) string {
	return fmt.Sprintf(`You are an Etsy SEO specialist. Write listing copy for
a digital download wall art print.

Concept style: %s
Concept theme: %s
Target audience: %s
Artwork description: %s

Respond with a JSON object with exactly these fields:
  "title": an Etsy listing title, keyword-rich, under 140 characters
  "description": several paragraphs of listing description, mentioning that
    this is a digital download available in multiple print sizes
  "keywords": an array of at most %d tags, each at most %d characters`,
		c.Style, c.Theme, c.TargetAudience, imagePrompt,
		listing.MaxSEOTags, listing.MaxSEOTagLength)
}

// parseConcept decodes a model response into a Concept. Responses wrapped in
// markdown code fences are unwrapped first.
func parseConcept(raw string) (listing.Concept, error) {
	var c listing.Concept
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &c); err != nil {
		return listing.Concept{}, fmt.Errorf("invalid concept JSON: %w", err)
	}
	if c.Style == "" || c.Theme == "" {
		return listing.Concept{}, fmt.Errorf("concept is missing style or theme")
	}
	return c, nil
}

// stripCodeFence removes a surrounding ```json fence, which some models emit
// even when asked for a bare JSON response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extensionForMIME maps a generated image MIME type to a file extension,
// defaulting to .png for unknown types.
func extensionForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/png", "":
		return ".png"
	default:
		return ".png"
	}
}
