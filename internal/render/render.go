// Package render produces one-page PDF or PNG exports of a single entry.
//
// The four entry types share one layout engine: a downward cursor in page
// fractions, per-type wrap/line/image budgets, and a low-cursor cutoff. The
// engine draws onto a canvas abstraction with a vector (fpdf) and a raster
// (gg) backend.
package render

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ymori/labnote/internal/domain/entry"
)

// Format selects the export output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat validates a format tag from the outside world.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatPNG:
		return Format(s), nil
	}
	return "", ErrUnknownFormat
}

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// PathResolver maps stored image names to on-disk paths.
type PathResolver interface {
	Resolve(name string) (string, bool)
}

// Renderer lays out entries onto export pages.
type Renderer struct {
	images PathResolver
	logger *slog.Logger
}

// NewRenderer creates an export renderer pulling images from the resolver.
func NewRenderer(images PathResolver, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{images: images, logger: logger}
}

// Render writes a one-page export of the entry to path. On failure no usable
// output file is produced and the caller must treat it as "no export".
func (r *Renderer) Render(e *entry.Entry, path string, format Format) error {
	lo := layoutFor(e.Type)

	var c canvas
	switch format {
	case FormatPDF:
		c = newPDFCanvas(lo.landscape)
	case FormatPNG:
		pc, err := newPNGCanvas(lo.landscape)
		if err != nil {
			return fmt.Errorf("creating raster canvas: %w", err)
		}
		c = pc
	default:
		return ErrUnknownFormat
	}

	r.drawPage(c, e, lo)

	if err := c.save(path); err != nil {
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	r.logger.Info("export written", "id", e.ID, "format", format, "path", path)
	return nil
}

// probeImage returns the pixel dimensions of an image file, validating that
// it decodes before a backend touches it.
func probeImage(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
