package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// pdfCanvas draws onto an A4 fpdf page.
type pdfCanvas struct {
	pdf *fpdf.Fpdf
	w   float64
	h   float64
}

func newPDFCanvas(landscape bool) *pdfCanvas {
	orientation := "P"
	if landscape {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.AddPage()
	w, h := pdf.GetPageSize()
	return &pdfCanvas{pdf: pdf, w: w, h: h}
}

func (c *pdfCanvas) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *pdfCanvas) text(x, y, size float64, bold bool, s string) {
	c.setFont(size, bold)
	c.pdf.Text(x*c.w, y*c.h, s)
}

func (c *pdfCanvas) textCentered(y, size float64, bold bool, s string) {
	c.setFont(size, bold)
	c.pdf.Text((c.w-c.pdf.GetStringWidth(s))/2, y*c.h, s)
}

func (c *pdfCanvas) image(path string, x, y, w float64) (float64, error) {
	// Validate before handing the file to fpdf: a decode failure inside
	// fpdf poisons the whole document.
	pxW, pxH, err := probeImage(path)
	if err != nil {
		return 0, err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "png", "jpg", "jpeg", "gif":
	default:
		return 0, fmt.Errorf("unsupported image type %q", ext)
	}

	widthMM := w * c.w
	heightMM := widthMM * float64(pxH) / float64(pxW)
	c.pdf.ImageOptions(path, x*c.w, y*c.h, widthMM, heightMM, false,
		fpdf.ImageOptions{ImageType: ext, ReadDpi: false}, 0, "")
	if c.pdf.Err() {
		return 0, c.pdf.Error()
	}
	return heightMM / c.h, nil
}

func (c *pdfCanvas) save(path string) error {
	return c.pdf.OutputFileAndClose(path)
}
