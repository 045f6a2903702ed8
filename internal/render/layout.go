package render

import (
	"strings"

	"github.com/ymori/labnote/internal/domain/entry"
)

// canvas is the drawing surface shared by the vector and raster backends.
// Coordinates are fractions of the page, x left-to-right, y top-to-bottom;
// sizes are points.
type canvas interface {
	text(x, y, size float64, bold bool, s string)
	textCentered(y, size float64, bold bool, s string)
	// image draws the file at x,y scaled to width w with intrinsic aspect
	// ratio preserved, returning the consumed height fraction.
	image(path string, x, y, w float64) (float64, error)
	save(path string) error
}

// layout carries the per-type page parameters: orientation, the character
// width text is wrapped to, the line budget per field, the image budget per
// image field and font sizing.
type layout struct {
	landscape  bool
	wrapWidth  int
	maxLines   int
	maxImages  int
	imageWidth float64
	titleSize  float64
	labelSize  float64
	bodySize   float64
}

func layoutFor(t entry.Type) layout {
	switch t {
	case entry.TypeDaily:
		return layout{landscape: true, wrapWidth: 80, maxLines: 3, maxImages: 2, imageWidth: 0.20, titleSize: 16, labelSize: 10, bodySize: 9}
	case entry.TypeExperiment:
		return layout{landscape: false, wrapWidth: 60, maxLines: 5, maxImages: 3, imageWidth: 0.20, titleSize: 16, labelSize: 10, bodySize: 9}
	case entry.TypeParticipation:
		return layout{landscape: false, wrapWidth: 60, maxLines: 20, maxImages: 5, imageWidth: 0.20, titleSize: 16, labelSize: 10, bodySize: 9}
	default:
		// research meeting: landscape slide with larger type
		return layout{landscape: true, wrapWidth: 80, maxLines: 3, maxImages: 2, imageWidth: 0.25, titleSize: 20, labelSize: 14, bodySize: 12}
	}
}

const (
	leftMargin = 0.05
	// cutoff is where the cursor stops placing further fields. Excess
	// content is truncated, never paginated to a second page.
	cutoff = 0.88
)

func (r *Renderer) drawPage(c canvas, e *entry.Entry, lo layout) {
	title := e.Type.DisplayName()
	if e.Type == entry.TypeResearchMeeting {
		if t := e.Fields.Text("meeting_title"); t != "" {
			title = t
		}
	}
	c.textCentered(0.06, lo.titleSize, true, title)

	y := 0.12
	var tags string

	for _, spec := range entry.Schema(e.Type) {
		if spec.Kind == entry.KindTags {
			tags = e.Fields.Text(spec.Key)
			continue
		}
		if e.Type == entry.TypeResearchMeeting && spec.Key == "meeting_title" {
			continue
		}
		if y > cutoff {
			break
		}

		switch spec.Kind {
		case entry.KindText:
			c.text(leftMargin, y, lo.labelSize, true, spec.Label+":")
			y += 0.03
			for i, line := range wrap(e.Fields.Text(spec.Key), lo.wrapWidth) {
				if i >= lo.maxLines || y > cutoff {
					break
				}
				c.text(leftMargin, y, lo.bodySize, false, line)
				y += 0.025
			}
			y += 0.015

		case entry.KindImages:
			names := e.Fields.Images(spec.Key)
			if len(names) == 0 || y > cutoff-0.05 {
				continue
			}
			c.text(leftMargin, y, lo.labelSize, true, spec.Label+":")
			y += 0.02

			x := leftMargin
			rowHeight := 0.0
			for i, name := range names {
				if i >= lo.maxImages {
					break
				}
				h := r.placeImage(c, name, x, y, lo.imageWidth)
				if h > rowHeight {
					rowHeight = h
				}
				x += lo.imageWidth + 0.05
			}
			y += rowHeight + 0.02
		}
	}

	if tags != "" {
		c.text(leftMargin, 0.95, lo.labelSize, false, "Tags: "+tags)
	}
}

// placeImage draws one image, or an inline error annotation when the file is
// missing or undecodable, and returns the consumed height fraction.
func (r *Renderer) placeImage(c canvas, name string, x, y, w float64) float64 {
	path, ok := r.images.Resolve(name)
	if ok {
		if h, err := c.image(path, x, y, w); err == nil {
			return h
		} else {
			r.logger.Warn("failed to place image", "name", name, "error", err)
		}
	}
	c.text(x, y+0.02, 8, false, "image unavailable: "+name)
	return 0.025
}

// wrap greedily word-wraps text to a fixed rune width, honoring embedded
// newlines. A word longer than the width is hard-split.
func wrap(s string, width int) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		line := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				runes := []rune(word)
				lines = append(lines, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
