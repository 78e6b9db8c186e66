package landing

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/skyscroll"
	"github.com/phanxgames/skyscroll/config"
)

// maxDecoders bounds concurrent image decodes.
const maxDecoders = 4

// Decoder turns a path into a CPU-side image.
type Decoder func(path string) (image.Image, error)

// Assets are decoded images, not yet uploaded as textures.
type Assets struct {
	Backgrounds []image.Image
	Cloud       image.Image
}

// AssetResult is delivered once by StartAssetLoad.
type AssetResult struct {
	Assets *Assets
	Err    error
}

// LoadAssets decodes every background and the cloud sprite concurrently. The
// first failure cancels the rest.
func LoadAssets(ctx context.Context, paths config.AssetsConfig, decode Decoder) (*Assets, error) {
	if decode == nil {
		decode = skyscroll.DecodeImageFile
	}
	a := &Assets{Backgrounds: make([]image.Image, len(paths.Backgrounds))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDecoders)
	for i, p := range paths.Backgrounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(p)
			if err != nil {
				return fmt.Errorf("background %d: %w", i, err)
			}
			a.Backgrounds[i] = img
			return nil
		})
	}
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := decode(paths.Cloud)
		if err != nil {
			return fmt.Errorf("cloud: %w", err)
		}
		a.Cloud = img
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}

// StartAssetLoad runs LoadAssets in the background. The returned channel
// yields exactly one result and is then closed.
func StartAssetLoad(ctx context.Context, paths config.AssetsConfig, decode Decoder) <-chan AssetResult {
	ch := make(chan AssetResult, 1)
	go func() {
		defer close(ch)
		a, err := LoadAssets(ctx, paths, decode)
		ch <- AssetResult{Assets: a, Err: err}
	}()
	return ch
}
