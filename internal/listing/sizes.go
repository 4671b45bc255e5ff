package listing

import "fmt"

// PrintDPI is the resolution every print asset is rendered at.
const PrintDPI = 300

// PrintSize is one nominal print size with its pixel dimensions at PrintDPI.
type PrintSize struct {
	Name     string
	WidthIn  int
	HeightIn int
	WidthPx  int
	HeightPx int
}

func newPrintSize(widthIn, heightIn int) PrintSize {
	return PrintSize{
		Name:     fmt.Sprintf("%dx%d", widthIn, heightIn),
		WidthIn:  widthIn,
		HeightIn: heightIn,
		WidthPx:  widthIn * PrintDPI,
		HeightPx: heightIn * PrintDPI,
	}
}

// portraitSizes are the standard portrait print sizes (height > width).
var portraitSizes = []PrintSize{
	newPrintSize(4, 6),
	newPrintSize(5, 7),
	newPrintSize(8, 10),
	newPrintSize(11, 14),
	newPrintSize(16, 20),
}

// landscapeSizes mirror the portrait table (width > height).
var landscapeSizes = []PrintSize{
	newPrintSize(6, 4),
	newPrintSize(7, 5),
	newPrintSize(10, 8),
	newPrintSize(14, 11),
	newPrintSize(20, 16),
}

// PrintSizes returns the size table for the given orientation.
// The returned slice is a copy and safe to modify.
func PrintSizes(a AspectRatio) []PrintSize {
	var table []PrintSize
	switch a {
	case AspectPortrait:
		table = portraitSizes
	case AspectLandscape:
		table = landscapeSizes
	default:
		return nil
	}

	out := make([]PrintSize, len(table))
	copy(out, table)
	return out
}

// mockupScenes are the template scene names rendered for every listing,
// prefixed with the orientation to select the matching template family.
var mockupScenes = []string{
	"frame-on-wall",
	"frame-on-desk",
	"gallery-wall",
	"living-room-scene",
}

// Templates returns the mockup template names for the given orientation,
// e.g. "portrait-frame-on-wall". Returns nil for an invalid orientation.
func Templates(a AspectRatio) []string {
	if !a.Valid() {
		return nil
	}

	out := make([]string, len(mockupScenes))
	for i, scene := range mockupScenes {
		out[i] = fmt.Sprintf("%s-%s", a, scene)
	}
	return out
}
