package entry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ymori/labnote/internal/domain/entry"
	"github.com/ymori/labnote/internal/mocks"
)

func newTestService(t *testing.T) (*entry.Service, *mocks.DocumentStore) {
	t.Helper()
	store := &mocks.DocumentStore{}
	store.On("SaveEntries", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.On("SaveDrafts", mock.Anything, mock.Anything).Return(nil)
	return entry.NewService(store, nil), store
}

func TestService_Commit_HashConsistent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	fields := entry.Fields{"date": "2024-01-01", "name": "Alice", "tags": "x"}
	e, err := svc.Commit(ctx, entry.TypeDaily, fields, "")
	require.NoError(t, err)
	require.Equal(t, entry.StatusCompleted, e.Status)
	require.Equal(t, entry.Digest(e.Fields), e.Hash)

	found, ok := svc.Find(e.ID)
	require.True(t, ok)
	require.Equal(t, entry.Digest(found.Fields), found.Hash)
}

func TestService_Commit_InvalidType(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Commit(context.Background(), "journal", entry.Fields{}, "")
	require.ErrorIs(t, err, entry.ErrInvalidType)
}

func TestService_Commit_RemovesNamedDraft(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	draftID, err := svc.SaveDraft(ctx, entry.TypeDaily, entry.Fields{"name": "draft"}, "")
	require.NoError(t, err)

	_, err = svc.Commit(ctx, entry.TypeDaily, entry.Fields{"name": "final"}, draftID)
	require.NoError(t, err)

	_, ok := svc.Find(draftID)
	require.False(t, ok)
	store.AssertCalled(t, "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNumberOfCalls(t, "SaveDrafts", 2) // draft save + commit cleanup
}

func TestService_Amend_ExistingEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	e, err := svc.Commit(ctx, entry.TypeDaily, entry.Fields{"name": "Alice"}, "")
	require.NoError(t, err)
	oldHash := e.Hash

	found, err := svc.Amend(ctx, e.ID, entry.TypeDaily, entry.Fields{"name": "Bob"})
	require.NoError(t, err)
	require.True(t, found)

	amended, ok := svc.Find(e.ID)
	require.True(t, ok)
	require.Equal(t, "Bob", amended.Fields.Text("name"))
	require.NotEqual(t, oldHash, amended.Hash)
	require.Equal(t, entry.Digest(amended.Fields), amended.Hash)
}

func TestService_Amend_PromotesDraft(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	draftID, err := svc.SaveDraft(ctx, entry.TypeExperiment, entry.Fields{"purpose": "test"}, "")
	require.NoError(t, err)

	found, err := svc.Amend(ctx, draftID, entry.TypeExperiment, entry.Fields{"purpose": "updated"})
	require.NoError(t, err)
	require.True(t, found)

	// The draft id no longer resolves; the promoted record got a new id.
	_, ok := svc.Find(draftID)
	require.False(t, ok)

	refs := svc.List()
	require.Len(t, refs, 1)
	require.Equal(t, entry.StatusCompleted, refs[0].Status)
	require.NotEqual(t, draftID, refs[0].ID)

	promoted, ok := svc.Find(refs[0].ID)
	require.True(t, ok)
	require.Equal(t, "updated", promoted.Fields.Text("purpose"))
	require.NotEmpty(t, promoted.Hash)
}

func TestService_Amend_NoMatch(t *testing.T) {
	svc, _ := newTestService(t)
	found, err := svc.Amend(context.Background(), "nope", entry.TypeDaily, entry.Fields{})
	require.NoError(t, err)
	require.False(t, found)
}

func TestService_SaveDraft_OverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.SaveDraft(ctx, entry.TypeExperiment, entry.Fields{"purpose": "first"}, "")
	require.NoError(t, err)

	again, err := svc.SaveDraft(ctx, entry.TypeExperiment, entry.Fields{"purpose": "second"}, id)
	require.NoError(t, err)
	require.Equal(t, id, again)

	require.Len(t, svc.List(), 1)
	draft, ok := svc.Find(id)
	require.True(t, ok)
	require.Equal(t, "second", draft.Fields.Text("purpose"))
	require.Equal(t, entry.StatusDraft, draft.Status)
	require.Empty(t, draft.Hash)
}

func TestService_SaveDraft_UnknownIDMintsNew(t *testing.T) {
	svc, _ := newTestService(t)
	id, err := svc.SaveDraft(context.Background(), entry.TypeDaily, entry.Fields{}, "draft_daily-gone")
	require.NoError(t, err)
	require.NotEqual(t, "draft_daily-gone", id)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	e, err := svc.Commit(ctx, entry.TypeDaily, entry.Fields{"name": "Alice"}, "")
	require.NoError(t, err)
	draftID, err := svc.SaveDraft(ctx, entry.TypeExperiment, entry.Fields{}, "")
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, "no-such-id")
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = svc.Remove(ctx, e.ID)
	require.NoError(t, err)
	require.True(t, removed)
	_, ok := svc.Find(e.ID)
	require.False(t, ok)

	// The draft is untouched by the entry removal.
	_, ok = svc.Find(draftID)
	require.True(t, ok)

	removed, err = svc.Remove(ctx, draftID)
	require.NoError(t, err)
	require.True(t, removed)
}

func TestService_List_MarksDrafts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Commit(ctx, entry.TypeDaily, entry.Fields{"name": "Alice", "tags": "x"}, "")
	require.NoError(t, err)
	_, err = svc.SaveDraft(ctx, entry.TypeExperiment, entry.Fields{"purpose": "wip"}, "")
	require.NoError(t, err)

	refs := svc.List()
	require.Len(t, refs, 2)

	byStatus := map[entry.Status]entry.Ref{}
	for _, ref := range refs {
		byStatus[ref.Status] = ref
	}
	require.Contains(t, byStatus[entry.StatusCompleted].Title, "Alice")
	require.Equal(t, "x", byStatus[entry.StatusCompleted].Tags)
	require.Contains(t, byStatus[entry.StatusDraft].Title, "(draft)")
}

func TestService_ImagesForSelection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Commit(ctx, entry.TypeDaily, entry.Fields{
		"name":                   "Alice",
		"today_completed_images": []string{"a.png"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Commit(ctx, entry.TypeExperiment, entry.Fields{
		"purpose":        "p",
		"results_images": []string{"b.png"},
	}, "")
	require.NoError(t, err)
	_, err = svc.Commit(ctx, entry.TypeParticipation, entry.Fields{
		"content": "c",
		"images":  []string{"ignored.png"},
	}, "")
	require.NoError(t, err)

	refs := svc.ImagesForSelection()
	require.Len(t, refs, 2)
	names := []string{refs[0].Filename, refs[1].Filename}
	require.ElementsMatch(t, []string{"a.png", "b.png"}, names)
}

func TestService_Find_ChecksEntriesBeforeDrafts(t *testing.T) {
	svc, _ := newTestService(t)
	_, ok := svc.Find("missing")
	require.False(t, ok)
}
