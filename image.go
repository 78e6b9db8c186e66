package skyscroll

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// DecodeImageFile decodes a PNG or JPEG file into a CPU-side image. It does
// not touch the GPU and may be called from any goroutine.
func DecodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadImage decodes path and uploads it as a texture.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}
