// Package imageutil provides the image collaborators around the
// segmentation core: decoding source bitmaps, nearest-neighbor scaling, and
// rendering a decoded segmentation back out as an image.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register JPEG so image.Decode accepts it
	"image/png"
	"os"
)

// Decode reads an image file (PNG or JPEG) into memory.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image '%s': %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}
	return img, nil
}

// Scale resizes an image by the given factor using nearest-neighbor
// sampling. A factor of 1 returns a plain RGBA copy of the input.
func Scale(img image.Image, factor float64) *image.RGBA {
	bounds := img.Bounds()
	if factor == 1 {
		// Re-origin to (0,0) so callers can index the copy directly.
		out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
		return out
	}

	w := int(float64(bounds.Dx()) * factor)
	h := int(float64(bounds.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcY := bounds.Min.Y + int(float64(y)/factor)
		if srcY > bounds.Max.Y-1 {
			srcY = bounds.Max.Y - 1
		}
		for x := 0; x < w; x++ {
			srcX := bounds.Min.X + int(float64(x)/factor)
			if srcX > bounds.Max.X-1 {
				srcX = bounds.Max.X - 1
			}
			out.Set(x, y, img.At(srcX, srcY))
		}
	}
	return out
}

// RenderSegments paints every pixel with the average RGB color of its
// segment. segments assigns a segment id to each pixel in row-major order
// (index y*width + x) and must have width*height entries.
func RenderSegments(img image.Image, segments []int, width, height int) *image.RGBA {
	type acc struct {
		r, g, b, n uint64
	}
	sums := make(map[int]*acc)
	bounds := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			a := sums[segments[y*width+x]]
			if a == nil {
				a = &acc{}
				sums[segments[y*width+x]] = a
			}
			a.r += uint64(r >> 8)
			a.g += uint64(g >> 8)
			a.b += uint64(b >> 8)
			a.n++
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := sums[segments[y*width+x]]
			out.Set(x, y, color.RGBA{
				R: uint8(a.r / a.n),
				G: uint8(a.g / a.n),
				B: uint8(a.b / a.n),
				A: 255,
			})
		}
	}
	return out
}

// RenderBoundaries draws the original image with segment boundaries marked
// in the given color. A pixel is a boundary pixel when its right or lower
// neighbor belongs to a different segment.
func RenderBoundaries(img image.Image, segments []int, width, height int, boundary color.RGBA) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := segments[y*width+x]
			if x+1 < width && segments[y*width+x+1] != id {
				out.SetRGBA(x, y, boundary)
			}
			if y+1 < height && segments[(y+1)*width+x] != id {
				out.SetRGBA(x, y, boundary)
			}
		}
	}
	return out
}

// EncodePNG writes an image to disk as PNG.
func EncodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode '%s': %w", path, err)
	}
	return nil
}
