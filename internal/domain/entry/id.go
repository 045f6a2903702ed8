package entry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// idTimeLayout renders a second-precision instant with ':' replaced by '-'
// so ids are safe to use in filenames.
const idTimeLayout = "2006-01-02T15-04-05"

// NewID composes a human-sortable id from the type tag and the current
// instant. Second-precision collisions are accepted as negligible for a
// single-user tool.
func NewID(t Type) string {
	return string(t) + "-" + time.Now().Format(idTimeLayout)
}

// NewDraftID composes an id for a freshly created draft.
func NewDraftID(t Type) string {
	return "draft_" + NewID(t)
}

// Digest computes the tamper-evidence hash over a data payload. Image-list
// fields are sorted first so the hash is stable across upload order, then the
// payload is serialized with deterministic key ordering and hashed.
func Digest(f Fields) string {
	norm := make(map[string]any, len(f))
	for k, v := range f {
		if ImageListKeys[k] {
			images := append([]string(nil), Fields(f).Images(k)...)
			sort.Strings(images)
			norm[k] = images
			continue
		}
		norm[k] = v
	}
	// encoding/json writes map keys in sorted order.
	data, err := json.Marshal(norm)
	if err != nil {
		data = []byte{}
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

const titleBudget = 30

// Title produces the short human label for an entry, used in listings and
// export filenames.
func (e *Entry) Title() string {
	switch e.Type {
	case TypeDaily:
		return "Daily - " + orUntitled(e.Fields.Text("name"))
	case TypeExperiment:
		return "Experiment - " + truncate(orUntitled(e.Fields.Text("purpose")))
	case TypeParticipation:
		return "Participation - " + truncate(orUntitled(e.Fields.Text("content")))
	case TypeResearchMeeting:
		return "Meeting - " + orUntitled(e.Fields.Text("meeting_title"))
	}
	return "Unknown"
}

// ExportFilename derives a download filename from the entry title, with
// spaces and path separators substituted.
func (e *Entry) ExportFilename(ext string) string {
	name := e.Title()
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "-")
	return name + "." + ext
}

func orUntitled(s string) string {
	if s == "" {
		return "untitled"
	}
	return s
}

// truncate cuts at a fixed rune budget with an ellipsis marker; no
// word-boundary awareness.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= titleBudget {
		return s
	}
	return string(runes[:titleBudget]) + "..."
}
