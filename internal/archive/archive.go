// Package archive renders the self-contained HTML snapshot of all entries
// and drafts, with every referenced image embedded inline so the document is
// portable without the images directory.
package archive

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/ymori/labnote/internal/domain/entry"
)

// InlineReader supplies base64-encoded image bytes for embedding.
type InlineReader interface {
	ReadInline(name string) (string, bool)
}

// Renderer builds the archive document.
type Renderer struct {
	images InlineReader
	tmpl   *template.Template
}

// NewRenderer creates an archive renderer backed by the given image reader.
func NewRenderer(images InlineReader) *Renderer {
	return &Renderer{
		images: images,
		tmpl:   template.Must(template.New("archive").Parse(pageTemplate)),
	}
}

// Render merges entries and drafts, sorts by timestamp descending and
// produces one HTML document.
func (r *Renderer) Render(entries, drafts []entry.Entry) ([]byte, error) {
	all := make([]entry.Entry, 0, len(entries)+len(drafts))
	all = append(all, entries...)
	all = append(all, drafts...)
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })

	view := pageView{Generated: time.Now().Format(time.RFC3339)}
	for _, e := range all {
		view.Entries = append(view.Entries, r.entryView(e))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering archive: %w", err)
	}
	return buf.Bytes(), nil
}

type pageView struct {
	Generated string
	Entries   []entryView
}

type entryView struct {
	Title      string
	ID         string
	Timestamp  string
	Status     string
	HashPrefix string
	Draft      bool
	Fields     []fieldView
}

type fieldView struct {
	Label  string
	Kind   string
	Text   string
	Images []template.URL
}

func (r *Renderer) entryView(e entry.Entry) entryView {
	v := entryView{
		Title:     e.Title(),
		ID:        e.ID,
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Status:    string(e.Status),
		Draft:     e.Status == entry.StatusDraft,
	}
	if v.Draft {
		v.Title += " (draft)"
	}
	if e.Hash != "" && len(e.Hash) >= 16 {
		v.HashPrefix = e.Hash[:16] + "..."
	}

	for _, spec := range entry.Schema(e.Type) {
		switch spec.Kind {
		case entry.KindImages:
			names := e.Fields.Images(spec.Key)
			if len(names) == 0 {
				continue
			}
			fv := fieldView{Label: spec.Label, Kind: "images"}
			for _, name := range names {
				encoded, ok := r.images.ReadInline(name)
				if !ok {
					continue
				}
				fv.Images = append(fv.Images, template.URL("data:image/jpeg;base64,"+encoded))
			}
			v.Fields = append(v.Fields, fv)
		case entry.KindTags:
			v.Fields = append(v.Fields, fieldView{Label: spec.Label, Kind: "tags", Text: e.Fields.Text(spec.Key)})
		default:
			v.Fields = append(v.Fields, fieldView{Label: spec.Label, Kind: "text", Text: e.Fields.Text(spec.Key)})
		}
	}
	return v
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Research Log</title>
<style>
body { font-family: sans-serif; margin: 20px; line-height: 1.6; }
h1, h2 { color: #333; }
.entry { border: 1px solid #ddd; margin: 20px 0; padding: 20px; border-radius: 8px; box-shadow: 2px 2px 5px rgba(0,0,0,0.1); }
.entry-header { background: #f0f0f0; padding: 10px; margin: -20px -20px 20px -20px; border-radius: 8px 8px 0 0; }
.field { margin: 10px 0; }
.label { font-weight: bold; color: #555; }
pre { background: #eee; padding: 10px; border-radius: 5px; white-space: pre-wrap; word-wrap: break-word; }
.images { display: flex; flex-wrap: wrap; gap: 10px; margin: 10px 0; }
.images img { max-width: 200px; height: auto; border: 1px solid #ccc; border-radius: 4px; }
.tags { color: #007bff; background: #e0f0ff; padding: 3px 8px; border-radius: 12px; font-size: 0.9em; }
.draft { background-color: #fff3cd; border-color: #ffc107; }
.draft .entry-header { background-color: #ffeeba; }
</style>
</head>
<body>
<h1>Research Log</h1>
{{range .Entries}}
<div class="entry{{if .Draft}} draft{{end}}">
  <div class="entry-header">
    <h2>{{.Title}}</h2>
    <p>ID: {{.ID}}</p>
    <p>Updated: {{.Timestamp}}</p>
    <p>Status: {{.Status}}</p>
    {{if .HashPrefix}}<p>Hash: {{.HashPrefix}}</p>{{end}}
  </div>
  {{range .Fields}}
  {{if eq .Kind "images"}}
  <div class="field"><span class="label">{{.Label}}:</span>
    <div class="images">{{range .Images}}<img src="{{.}}" alt="">{{end}}</div>
  </div>
  {{else if eq .Kind "tags"}}
  <div class="field"><span class="label">{{.Label}}:</span> <span class="tags">{{.Text}}</span></div>
  {{else}}
  <div class="field"><span class="label">{{.Label}}:</span> <pre>{{.Text}}</pre></div>
  {{end}}
  {{end}}
</div>
{{end}}
</body>
</html>
`
