// Package printprep turns one approved artwork file into print-ready assets
// at every standard print size for its orientation.
package printprep

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/errors"
	"github.com/orizehavi/listingforge/internal/listing"
	"github.com/orizehavi/listingforge/internal/logging"
)

// Preparer produces the print-size asset set from a source artwork image.
type Preparer struct {
	cfg    config.PrintPrepConfig
	logger *logging.Logger
}

// NewPreparer creates a Preparer with the given processing settings.
func NewPreparer(cfg config.PrintPrepConfig, logger *logging.Logger) *Preparer {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	return &Preparer{cfg: cfg, logger: logger.WithStage("prints")}
}

// Prepare upscales and enhances the source artwork, then renders one PNG per
// print size for the image's orientation into outDir. The returned assets are
// in the same order as the size table.
func (p *Preparer) Prepare(ctx context.Context, img listing.GeneratedImage, outDir string) ([]listing.PrintAsset, error) {
	if err := listing.ValidateAspectRatio("prints", img.AspectRatio); err != nil {
		return nil, err
	}

	src, err := p.loadSource(img.Path)
	if err != nil {
		return nil, err
	}

	enhanced := p.enhance(src)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.NewPersistenceError("failed to create prints directory", err).
			WithStage("prints").WithPath(outDir)
	}

	sizes := listing.PrintSizes(img.AspectRatio)
	assets := make([]listing.PrintAsset, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rendered := p.render(enhanced, size)
		path := filepath.Join(outDir, fmt.Sprintf("print_%s.png", size.Name))
		if err := imaging.Save(rendered, path); err != nil {
			return nil, errors.NewPersistenceError(
				fmt.Sprintf("failed to save %s print", size.Name), err).
				WithStage("prints").WithPath(path)
		}

		assets = append(assets, listing.PrintAsset{
			SizeName: size.Name,
			Path:     path,
			WidthPx:  size.WidthPx,
			HeightPx: size.HeightPx,
		})
		p.logger.Debug("print asset rendered", "size", size.Name, "path", path)
	}

	p.logger.Info("print assets prepared",
		"count", len(assets),
		"aspect_ratio", img.AspectRatio,
		"dir", outDir)
	return assets, nil
}

// loadSource opens and decodes the artwork file. PNG, JPEG, and WebP sources
// are supported; Imagen can return any of the three.
func (p *Preparer) loadSource(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to open source artwork", err).
			WithStage("prints").WithPath(path)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to decode source artwork", err).
			WithStage("prints").WithPath(path)
	}
	return src, nil
}

// enhance upscales the source and applies print-oriented adjustments.
func (p *Preparer) enhance(src image.Image) image.Image {
	out := src
	if p.cfg.Scale > 1 {
		bounds := src.Bounds()
		out = imaging.Resize(out, bounds.Dx()*p.cfg.Scale, 0, imaging.Lanczos)
	}
	if p.cfg.Sharpen > 0 {
		out = imaging.Sharpen(out, p.cfg.Sharpen)
	}
	if p.cfg.Contrast != 0 {
		out = imaging.AdjustContrast(out, p.cfg.Contrast)
	}
	if p.cfg.Saturation != 0 {
		out = imaging.AdjustSaturation(out, p.cfg.Saturation)
	}
	return out
}

// render produces the exact canvas for one print size. In fill mode the image
// is center-cropped to cover the canvas; otherwise it is fitted with white
// borders.
func (p *Preparer) render(src image.Image, size listing.PrintSize) image.Image {
	if p.cfg.FillCanvas {
		return imaging.Fill(src, size.WidthPx, size.HeightPx, imaging.Center, imaging.Lanczos)
	}
	fitted := imaging.Fit(src, size.WidthPx, size.HeightPx, imaging.Lanczos)
	canvas := imaging.New(size.WidthPx, size.HeightPx, color.White)
	return imaging.PasteCenter(canvas, fitted)
}
