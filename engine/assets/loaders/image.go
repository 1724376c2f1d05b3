package loaders

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/spaghettifunk/parallax/engine/core"
	"github.com/spaghettifunk/parallax/engine/renderer/metadata"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageLoader decodes png, jpeg, bmp and webp files into tightly packed RGBA.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening image '%s'", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(core.ErrTextureDecode, "'%s': %s", path, err.Error())
	}
	core.LogDebug("decoded %s image '%s' (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())

	rgba := ToNRGBA(img)
	if flip {
		FlipVertical(rgba)
	}
	return &metadata.Resource{
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data:     rgba,
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}

// ToNRGBA returns img as an NRGBA image with origin (0,0) and stride 4*width.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// FlipVertical swaps rows in place.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	row := img.Stride
	tmp := make([]uint8, row)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*row : (y+1)*row]
		bottom := img.Pix[(h-1-y)*row : (h-y)*row]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
