package archive_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ymori/labnote/internal/archive"
	"github.com/ymori/labnote/internal/domain/entry"
	"github.com/ymori/labnote/internal/imagestore"
)

func TestRender_EmbedsEntriesAndDrafts(t *testing.T) {
	images, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)
	name, err := images.Store([]byte("png bytes"), "result.png")
	require.NoError(t, err)

	fields := entry.Fields{
		"name":                   "Alice",
		"today_completed":        "wrote the report",
		"today_completed_images": []string{name},
		"tags":                   "progress",
	}
	completed := entry.Entry{
		ID:        "daily-2024-01-02T10-00-00",
		Type:      entry.TypeDaily,
		Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		Fields:    fields,
		Hash:      entry.Digest(fields),
		Status:    entry.StatusCompleted,
	}
	draft := entry.Entry{
		ID:        "draft_experiment-2024-01-01T09-00-00",
		Type:      entry.TypeExperiment,
		Timestamp: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Fields:    entry.Fields{"purpose": "half-finished idea"},
		Status:    entry.StatusDraft,
	}

	html, err := archive.NewRenderer(images).Render([]entry.Entry{completed}, []entry.Entry{draft})
	require.NoError(t, err)

	doc := string(html)
	require.Contains(t, doc, "Alice")
	require.Contains(t, doc, "wrote the report")
	require.Contains(t, doc, "progress")
	require.Contains(t, doc, completed.Hash[:16])
	require.Contains(t, doc, "data:image/jpeg;base64,")

	require.Contains(t, doc, "half-finished idea")
	require.Contains(t, doc, `class="entry draft"`)
	require.Contains(t, doc, "(draft)")
}

func TestRender_SortsNewestFirst(t *testing.T) {
	images, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	older := entry.Entry{
		ID:        "daily-2024-01-01T10-00-00",
		Type:      entry.TypeDaily,
		Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Fields:    entry.Fields{"name": "OldName"},
		Status:    entry.StatusCompleted,
	}
	newer := entry.Entry{
		ID:        "daily-2024-02-01T10-00-00",
		Type:      entry.TypeDaily,
		Timestamp: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Fields:    entry.Fields{"name": "NewName"},
		Status:    entry.StatusCompleted,
	}

	html, err := archive.NewRenderer(images).Render([]entry.Entry{older, newer}, nil)
	require.NoError(t, err)

	doc := string(html)
	require.Less(t, strings.Index(doc, "NewName"), strings.Index(doc, "OldName"))
}

func TestRender_SkipsUnreadableImages(t *testing.T) {
	images, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	e := entry.Entry{
		ID:        "participation-2024-01-01T10-00-00",
		Type:      entry.TypeParticipation,
		Timestamp: time.Now(),
		Fields:    entry.Fields{"content": "talk notes", "images": []string{"gone.png"}},
		Status:    entry.StatusCompleted,
	}

	html, err := archive.NewRenderer(images).Render([]entry.Entry{e}, nil)
	require.NoError(t, err)
	require.NotContains(t, string(html), "data:image/jpeg;base64,")
}
