// Package imgmeta probes image files for pixel dimensions. The probe is
// best-effort: converters that cannot learn dimensions from metadata leave
// them unknown rather than failing the run.
package imgmeta

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/xhpmoonx/computer-vision-data-annotation/pkg/types"
)

// Probe reads the image header at path and reports its dimensions. The
// second return is false when the file cannot be opened or decoded; that is
// the "dimensions unknown" outcome, not an error.
func Probe(path string) (types.Dimensions, bool) {
	f, err := os.Open(path)
	if err != nil {
		return types.Dimensions{}, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return types.Dimensions{}, false
	}
	return types.Dimensions{Width: cfg.Width, Height: cfg.Height}, true
}
