package listing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/orizehavi/listingforge/internal/errors"
)

// AspectRatio is the binary orientation classification fixed at concept
// approval. It selects the print-size table and mockup template family for
// every downstream stage.
type AspectRatio string

const (
	AspectPortrait  AspectRatio = "portrait"
	AspectLandscape AspectRatio = "landscape"
)

// Valid reports whether the aspect ratio is one of the two recognized values.
func (a AspectRatio) Valid() bool {
	return a == AspectPortrait || a == AspectLandscape
}

// ValidateAspectRatio checks the aspect ratio at a stage boundary.
// A missing or unrecognized value returns a ContractViolationError
// attributed to the given stage.
func ValidateAspectRatio(stage string, a AspectRatio) error {
	if a == "" {
		return errors.NewContractViolation(stage, "aspect_ratio", nil)
	}
	if !a.Valid() {
		return errors.NewContractViolation(stage, "aspect_ratio", string(a))
	}
	return nil
}

// Concept is the structured creative brief approved by a human before any
// image generation happens. Immutable once approved.
type Concept struct {
	Style          string      `json:"style"`
	Theme          string      `json:"theme"`
	TargetAudience string      `json:"target_audience"`
	AspectRatio    AspectRatio `json:"aspect_ratio"`
}

// PromptRecord carries the image-generation prompt derived from an approved
// concept. Its aspect ratio is copied from the concept, never recomputed.
type PromptRecord struct {
	Prompt      string      `json:"prompt"`
	AspectRatio AspectRatio `json:"aspect_ratio"`
}

// NewPromptRecord builds a PromptRecord for the given concept.
// The concept's aspect ratio is carried forward verbatim.
func NewPromptRecord(c Concept, prompt string) PromptRecord {
	return PromptRecord{
		Prompt:      prompt,
		AspectRatio: c.AspectRatio,
	}
}

// GeneratedImage references an image produced by the image-generation
// capability. Path points at the stored file; the aspect ratio is inherited
// from the PromptRecord that produced it.
type GeneratedImage struct {
	Path        string      `json:"path"`
	AspectRatio AspectRatio `json:"aspect_ratio"`
}

// MaxSEOTags is the tag count limit on a listing.
const MaxSEOTags = 13

// MaxSEOTagLength is the per-tag character limit.
const MaxSEOTagLength = 20

// SEORecord holds search metadata for the listing: an ordered list of at
// most MaxSEOTags tags, each at most MaxSEOTagLength characters, plus a
// title and description.
type SEORecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"keywords"`
}

// Clamp enforces the tag limits in place: tags longer than MaxSEOTagLength
// are dropped, the list is truncated to MaxSEOTags, and surrounding
// whitespace is trimmed. Order is preserved. Model output routinely
// overshoots these limits, so clamping is preferred over failing the run.
func (s *SEORecord) Clamp() {
	kept := make([]string, 0, MaxSEOTags)
	for _, tag := range s.Tags {
		tag = strings.TrimSpace(tag)
		// The limit counts characters, not bytes; multibyte tags at the
		// boundary must survive.
		if tag == "" || utf8.RuneCountInString(tag) > MaxSEOTagLength {
			continue
		}
		kept = append(kept, tag)
		if len(kept) == MaxSEOTags {
			break
		}
	}
	s.Tags = kept
}

// PrintAsset is one print-ready file rendered at a nominal size from the
// orientation's size table.
type PrintAsset struct {
	SizeName string `json:"size"`
	Path     string `json:"path"`
	WidthPx  int    `json:"width_px"`
	HeightPx int    `json:"height_px"`
}

// MockupAsset is one rendered product mockup.
type MockupAsset struct {
	Template string `json:"template"`
	Path     string `json:"path"`
}

// ListingMetadata is the SEO metadata block of the final record. Its aspect
// ratio must equal the approved concept's.
type ListingMetadata struct {
	AspectRatio AspectRatio `json:"aspect_ratio"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tags        []string    `json:"keywords"`
}

// ListingAssets groups the file-producing outputs of a run.
type ListingAssets struct {
	Original string        `json:"original"`
	Prints   []PrintAsset  `json:"prints"`
	Mockups  []MockupAsset `json:"mockups"`
}

// ListingRecord is the terminal aggregate describing one complete, sellable
// listing. It is created once at the final stage, written exactly once, and
// never mutated after persistence.
type ListingRecord struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Concept   Concept         `json:"concept"`
	Assets    ListingAssets   `json:"assets"`
	Metadata  ListingMetadata `json:"metadata"`
	Dir       string          `json:"dir"`
}
