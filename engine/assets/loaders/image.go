package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spaghettifunk/aura/engine/core"
)

/**
 * @brief Decoded image pixel data, always converted to tightly packed
 * RGBA8 regardless of the source format.
 */
type ImageData struct {
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

type ImageLoader struct{}

// Load decodes an image file into RGBA8 pixel data. PNG, JPEG, BMP and
// TIFF are supported through their registered decoders.
func (il *ImageLoader) Load(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.LoadFailure(path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		err := fmt.Errorf("func Load - failed to decode image '%s': %w", path, err)
		core.LogError(err.Error())
		return nil, err
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &ImageData{
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}, nil
}
