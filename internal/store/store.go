// Package store persists run artifacts. Staged files produced during a run
// are organized into a final self-contained listing directory with a
// manifest; approved records are written as indented JSON.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/logging"
)

// Categories inside a listing directory, in manifest order.
var categories = []string{"concept", "original", "prints", "mockups", "metadata"}

// Store writes listing artifacts under a root output directory.
type Store struct {
	rootDir string
	logger  *logging.Logger
}

// NewStore creates a Store rooted at rootDir.
func NewStore(rootDir string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Store{rootDir: rootDir, logger: logger.WithStage("persist")}
}

// StagingDir returns the per-run staging directory for one artifact kind,
// e.g. images generated before the listing directory exists.
func (s *Store) StagingDir(runID, kind string) string {
	return filepath.Join(s.rootDir, "staging", runID, kind)
}

// SaveJSON writes v as indented JSON to path, creating parent directories.
func (s *Store) SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewPersistenceError("failed to create directory", err).
			WithStage("persist").WithPath(filepath.Dir(path))
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("failed to encode record", err).
			WithStage("persist").WithPath(path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewPersistenceError("failed to write record", err).
			WithStage("persist").WithPath(path)
	}
	return nil
}

// SaveConcept stages an approved concept as JSON and returns its path.
func (s *Store) SaveConcept(runID string, concept listing.Concept) (string, error) {
	path := filepath.Join(s.StagingDir(runID, "concept"), "concept.json")
	if err := s.SaveJSON(path, concept); err != nil {
		return "", err
	}
	s.logger.Debug("concept staged", "path", path)
	return path, nil
}

// RunAssets collects everything a finished run produced, keyed by category.
type RunAssets struct {
	// ListingName seeds the directory slug, usually the SEO title.
	ListingName string
	// RunID is recorded in the manifest.
	RunID string
	// Files maps a category (concept, original, prints, mockups, metadata)
	// to the staged files belonging to it.
	Files map[string][]string
	// Cleanup removes the staged source files after they are copied.
	Cleanup bool
}

// manifest is written as manifest.json at the root of a listing directory.
type manifest struct {
	RunID     string              `json:"run_id"`
	Listing   string              `json:"listing"`
	CreatedAt time.Time           `json:"created_at"`
	Files     map[string][]string `json:"files"`
}

// Organize copies staged run artifacts into a new timestamped listing
// directory with one subdirectory per category, writes a manifest, and
// returns the directory path. On failure the partially written directory is
// left in place for inspection.
func (s *Store) Organize(assets RunAssets) (string, error) {
	slug := Slugify(assets.ListingName)
	if slug == "" {
		slug = "untitled"
	}
	dir, err := s.claimListingDir(slug, assets.RunID)
	if err != nil {
		return "", errors.NewPersistenceError("failed to create listing directory", err).
			WithStage("persist").WithPath(s.rootDir)
	}

	man := manifest{
		RunID:     assets.RunID,
		Listing:   assets.ListingName,
		CreatedAt: time.Now().UTC(),
		Files:     make(map[string][]string, len(categories)),
	}

	for _, category := range categories {
		catDir := filepath.Join(dir, category)
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return "", errors.NewPersistenceError("failed to create listing directory", err).
				WithStage("persist").WithPath(catDir)
		}

		for _, src := range assets.Files[category] {
			name := category + "_" + filepath.Base(src)
			dst := filepath.Join(catDir, name)
			if err := copyFile(src, dst); err != nil {
				return "", errors.NewPersistenceError(
					fmt.Sprintf("failed to copy %s asset", category), err).
					WithStage("persist").WithPath(src)
			}
			man.Files[category] = append(man.Files[category], filepath.Join(category, name))
		}
	}

	if err := s.SaveJSON(filepath.Join(dir, "manifest.json"), man); err != nil {
		return "", err
	}

	if assets.Cleanup {
		s.cleanupSources(assets)
	}

	s.logger.Info("listing directory organized", "dir", dir, "run_id", assets.RunID)
	return dir, nil
}

// claimListingDir creates a fresh listing directory and returns its path.
// The timestamp has second resolution, so same-titled runs landing in the
// same second would collide on it alone; the run ID's leading characters keep
// concurrent runs apart, and os.Mkdir with a numeric suffix settles anything
// left.
func (s *Store) claimListingDir(slug, runID string) (string, error) {
	name := fmt.Sprintf("listing_%s_%s", slug, time.Now().Format("20060102_150405"))
	if runID != "" {
		short := runID
		if len(short) > 8 {
			short = short[:8]
		}
		name += "_" + short
	}

	if err := os.MkdirAll(s.rootDir, 0o755); err != nil {
		return "", err
	}
	for attempt := 1; ; attempt++ {
		candidate := name
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", name, attempt)
		}
		dir := filepath.Join(s.rootDir, candidate)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
	}
}

// cleanupSources removes staged files after a successful copy. Best-effort:
// a leftover staging file is not worth failing a completed run over.
func (s *Store) cleanupSources(assets RunAssets) {
	for _, files := range assets.Files {
		for _, src := range files {
			if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to remove staged file", "path", src, "error", err)
			}
		}
	}
	if assets.RunID != "" {
		// Prune the run's staging tree if nothing is left in it.
		_ = removeEmptyTree(filepath.Join(s.rootDir, "staging", assets.RunID))
	}
}

// Slugify lowercases s and reduces it to hyphen-separated alphanumeric words,
// capped at a filesystem-friendly length.
func Slugify(s string) string {
	const maxLen = 48
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// removeEmptyTree removes dir and its subdirectories when they contain no
// regular files.
func removeEmptyTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			return fmt.Errorf("directory %s is not empty", dir)
		}
		if err := removeEmptyTree(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return os.Remove(dir)
}
