package mockup

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// Local compositor scene parameters. Used when no mockup API key is
// configured; produces a framed artwork on a flat wall rather than a
// photographic scene.
type scene struct {
	canvasW, canvasH int
	wall             color.NRGBA
}

var scenes = map[string]scene{
	"frame-on-wall":     {2000, 1600, color.NRGBA{R: 0xEF, G: 0xEC, B: 0xE6, A: 0xFF}},
	"frame-on-desk":     {2000, 1600, color.NRGBA{R: 0xE3, G: 0xDD, B: 0xD2, A: 0xFF}},
	"gallery-wall":      {2000, 1600, color.NRGBA{R: 0xF5, G: 0xF3, B: 0xEF, A: 0xFF}},
	"living-room-scene": {2000, 1600, color.NRGBA{R: 0xDC, G: 0xD6, B: 0xCC, A: 0xFF}},
}

var frameColor = color.NRGBA{R: 0x2B, G: 0x2B, B: 0x2B, A: 0xFF}

const (
	frameWidth = 24  // frame border in canvas pixels
	matWidth   = 48  // white mat between frame and artwork
	artMaxSide = 900 // longest artwork side on the canvas
)

// renderLocal composites a simple framed-print scene for one template and
// writes it to outPath.
func (r *Renderer) renderLocal(template, artworkPath, outPath string) error {
	sc, err := sceneFor(template)
	if err != nil {
		return err
	}

	artwork, err := imaging.Open(artworkPath)
	if err != nil {
		return fmt.Errorf("failed to open artwork: %w", err)
	}

	fitted := imaging.Fit(artwork, artMaxSide, artMaxSide, imaging.Lanczos)
	framed := frame(fitted)

	canvas := imaging.New(sc.canvasW, sc.canvasH, sc.wall)
	canvas = imaging.PasteCenter(canvas, framed)

	if err := imaging.Save(canvas, outPath); err != nil {
		return fmt.Errorf("failed to save mockup: %w", err)
	}
	return nil
}

// sceneFor resolves a template name like "portrait-frame-on-wall" to its
// scene parameters.
func sceneFor(template string) (scene, error) {
	name := template
	for _, prefix := range []string{"portrait-", "landscape-"} {
		if strings.HasPrefix(template, prefix) {
			name = strings.TrimPrefix(template, prefix)
			break
		}
	}
	sc, ok := scenes[name]
	if !ok {
		return scene{}, fmt.Errorf("unknown mockup template %q", template)
	}
	return sc, nil
}

// frame surrounds the artwork with a white mat and a dark frame border.
func frame(artwork image.Image) image.Image {
	b := artwork.Bounds()

	matted := imaging.New(b.Dx()+2*matWidth, b.Dy()+2*matWidth, color.White)
	matted = imaging.PasteCenter(matted, artwork)

	mb := matted.Bounds()
	framed := imaging.New(mb.Dx()+2*frameWidth, mb.Dy()+2*frameWidth, frameColor)
	return imaging.PasteCenter(framed, matted)
}
