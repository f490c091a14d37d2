package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/aura/engine/core"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestImageLoaderConvertsToRGBA8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, path)

	loader := &ImageLoader{}
	data, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if data.Width != 2 || data.Height != 2 || data.ChannelCount != 4 {
		t.Fatalf("decoded %dx%d with %d channels", data.Width, data.Height, data.ChannelCount)
	}
	if len(data.Pixels) != 2*2*4 {
		t.Fatalf("pixel buffer is %d bytes", len(data.Pixels))
	}
	// First pixel was pure red.
	if data.Pixels[0] != 255 || data.Pixels[1] != 0 || data.Pixels[2] != 0 || data.Pixels[3] != 255 {
		t.Fatalf("first pixel = %v", data.Pixels[:4])
	}
}

func TestImageLoaderMissingFile(t *testing.T) {
	loader := &ImageLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("loading a missing file should fail")
	}
	if !errors.Is(err, core.ErrLoadFailure) {
		t.Fatalf("error %v does not wrap the load failure sentinel", err)
	}
}
