package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// pngDPI sets the raster resolution; A4 at 150 dpi.
const pngDPI = 150.0

// pngCanvas draws onto a gg raster context.
type pngCanvas struct {
	dc      *gg.Context
	w       float64
	h       float64
	regular *truetype.Font
	bold    *truetype.Font
}

func newPNGCanvas(landscape bool) (*pngCanvas, error) {
	w, h := 1240, 1754 // 8.27in x 11.69in at 150 dpi
	if landscape {
		w, h = h, w
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}

	return &pngCanvas{
		dc:      dc,
		w:       float64(w),
		h:       float64(h),
		regular: regular,
		bold:    bold,
	}, nil
}

func (c *pngCanvas) setFont(size float64, bold bool) {
	f := c.regular
	if bold {
		f = c.bold
	}
	c.dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size * pngDPI / 72}))
	c.dc.SetRGB(0, 0, 0)
}

func (c *pngCanvas) text(x, y, size float64, bold bool, s string) {
	c.setFont(size, bold)
	c.dc.DrawString(s, x*c.w, y*c.h)
}

func (c *pngCanvas) textCentered(y, size float64, bold bool, s string) {
	c.setFont(size, bold)
	c.dc.DrawStringAnchored(s, c.w/2, y*c.h, 0.5, 0)
}

func (c *pngCanvas) image(path string, x, y, w float64) (float64, error) {
	im, err := gg.LoadImage(path)
	if err != nil {
		return 0, err
	}
	bounds := im.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0, fmt.Errorf("empty image %s", path)
	}

	widthPx := w * c.w
	scale := widthPx / float64(bounds.Dx())
	heightPx := float64(bounds.Dy()) * scale

	c.dc.Push()
	c.dc.Scale(scale, scale)
	c.dc.DrawImage(im, int(x*c.w/scale), int(y*c.h/scale))
	c.dc.Pop()

	return heightPx / c.h, nil
}

func (c *pngCanvas) save(path string) error {
	return c.dc.SavePNG(path)
}
