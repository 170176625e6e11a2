package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"

	"github.com/Decentr-net/resume/internal/entities"
)

// borderRatio is a part of avatar's side taken by frame border.
const borderRatio = 16

// nolint:gochecknoglobals
var (
	gold   = color.NRGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff}
	silver = color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
)

// Draw decodes source image and returns it as a square png of given size with frame applied.
func Draw(src io.Reader, frame entities.Frame, size int) ([]byte, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var dst *image.NRGBA

	switch frame {
	case entities.FrameGold:
		dst = framed(img, size, func(_, _ int) color.NRGBA { return gold })
	case entities.FrameSilver:
		dst = framed(img, size, func(_, _ int) color.NRGBA { return silver })
	case entities.FrameRainbow:
		dst = framed(img, size, func(x, y int) color.NRGBA {
			return hue(float64(x+y) / float64(2*size) * 360)
		})
	default:
		dst = imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
	}

	var b bytes.Buffer
	if err := imaging.Encode(&b, dst, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return b.Bytes(), nil
}

func framed(img image.Image, size int, paint func(x, y int) color.NRGBA) *image.NRGBA {
	border := size / borderRatio
	inner := imaging.Fill(img, size-2*border, size-2*border, imaging.Center, imaging.Lanczos)

	dst := imaging.New(size, size, color.NRGBA{})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x < border || y < border || x >= size-border || y >= size-border {
				dst.SetNRGBA(x, y, paint(x, y))
			}
		}
	}

	return imaging.Paste(dst, inner, image.Pt(border, border))
}

// hue returns fully saturated color of hue h in degrees.
func hue(h float64) color.NRGBA {
	h = math.Mod(h, 360) / 60
	x := 1 - math.Abs(math.Mod(h, 2)-1)

	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}

	return color.NRGBA{R: uint8(r * 0xff), G: uint8(g * 0xff), B: uint8(b * 0xff), A: 0xff}
}
