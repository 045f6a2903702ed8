package entry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Service owns the in-memory entry and draft collections and drives the
// lifecycle between them. The JSON documents managed by the DocumentStore are
// the durable mirror, rewritten wholesale on every mutation.
//
// The original tool was strictly single-caller; because HTTP handlers run
// concurrently, a mutex guards the collections and the commit path.
type Service struct {
	mu      sync.Mutex
	store   DocumentStore
	logger  *slog.Logger
	entries []Entry
	drafts  []Entry
}

// NewService creates an entry service over the given document store.
func NewService(store DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Load populates the collections from the store.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries, s.drafts = s.store.Load(ctx)
	s.logger.Info("collections loaded", "entries", len(s.entries), "drafts", len(s.drafts))
}

// Commit creates a completed entry with a fresh id and hash. If draftID names
// an existing draft it is removed as part of the same operation.
func (s *Service) Commit(ctx context.Context, t Type, fields Fields, draftID string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, t, fields, draftID)
}

func (s *Service) commitLocked(ctx context.Context, t Type, fields Fields, draftID string) (*Entry, error) {
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}

	e := Entry{
		ID:        NewID(t),
		Type:      t,
		Timestamp: time.Now(),
		Fields:    fields,
		Hash:      Digest(fields),
		Status:    StatusCompleted,
	}
	s.entries = append(s.entries, e)

	draftRemoved := false
	if draftID != "" {
		s.drafts, draftRemoved = removeByID(s.drafts, draftID)
	}

	if err := s.store.SaveEntries(ctx, s.entries, s.drafts); err != nil {
		return nil, fmt.Errorf("saving entries: %w", err)
	}
	if draftRemoved {
		// Not transactional with the entries document; a crash between the
		// two writes leaves the draft on disk.
		if err := s.store.SaveDrafts(ctx, s.drafts); err != nil {
			return nil, fmt.Errorf("saving drafts: %w", err)
		}
	}

	s.logger.Info("entry committed", "id", e.ID, "type", e.Type)
	return &e, nil
}

// Amend replaces the data of an existing entry, recomputing hash and
// timestamp. When id names a draft instead, the draft is promoted: it is
// removed and a completed entry is created under a new id. Returns false when
// nothing matches.
func (s *Service) Amend(ctx context.Context, id string, t Type, fields Fields) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries[i].Fields = fields
		s.entries[i].Hash = Digest(fields)
		s.entries[i].Timestamp = time.Now()
		if err := s.store.SaveEntries(ctx, s.entries, s.drafts); err != nil {
			return false, fmt.Errorf("saving entries: %w", err)
		}
		s.logger.Info("entry amended", "id", id)
		return true, nil
	}

	for i := range s.drafts {
		if s.drafts[i].ID == id {
			if _, err := s.commitLocked(ctx, t, fields, id); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// SaveDraft overwrites the draft named by draftID in place, or mints a new
// draft id when none matches. Returns the effective draft id.
func (s *Service) SaveDraft(ctx context.Context, t Type, fields Fields, draftID string) (string, error) {
	if _, err := ParseType(string(t)); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := Entry{
		Type:      t,
		Timestamp: time.Now(),
		Fields:    fields,
		Status:    StatusDraft,
	}

	replaced := false
	if draftID != "" {
		for i := range s.drafts {
			if s.drafts[i].ID == draftID {
				draft.ID = draftID
				s.drafts[i] = draft
				replaced = true
				break
			}
		}
	}
	if !replaced {
		draft.ID = NewDraftID(t)
		s.drafts = append(s.drafts, draft)
	}

	if err := s.store.SaveDrafts(ctx, s.drafts); err != nil {
		return "", fmt.Errorf("saving drafts: %w", err)
	}
	s.logger.Info("draft saved", "id", draft.ID, "type", t)
	return draft.ID, nil
}

// Remove deletes any entry and any draft matching id. Both collections are
// filtered; an id accidentally present in both is removed from both.
func (s *Service) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entryRemoved, draftRemoved bool
	s.entries, entryRemoved = removeByID(s.entries, id)
	s.drafts, draftRemoved = removeByID(s.drafts, id)
	if !entryRemoved && !draftRemoved {
		return false, nil
	}

	if err := s.store.SaveEntries(ctx, s.entries, s.drafts); err != nil {
		return false, fmt.Errorf("saving entries: %w", err)
	}
	if err := s.store.SaveDrafts(ctx, s.drafts); err != nil {
		return false, fmt.Errorf("saving drafts: %w", err)
	}
	s.logger.Info("entry removed", "id", id)
	return true, nil
}

// Find returns the entry or draft matching id, entries checked first.
func (s *Service) Find(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	for _, d := range s.drafts {
		if d.ID == id {
			return d, true
		}
	}
	return Entry{}, false
}

// List returns listing rows for all entries and drafts, newest id first.
func (s *Service) List() []Ref {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]Ref, 0, len(s.entries)+len(s.drafts))
	for _, e := range s.entries {
		refs = append(refs, toRef(e, e.Title()))
	}
	for _, d := range s.drafts {
		refs = append(refs, toRef(d, d.Title()+" (draft)"))
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID > refs[j].ID })
	return refs
}

// ImagesForSelection lists every image referenced by completed daily and
// experiment entries, for reuse in research-meeting reports.
func (s *Service) ImagesForSelection() []ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	var refs []ImageRef
	for _, e := range s.entries {
		var field string
		switch e.Type {
		case TypeDaily:
			field = "today_completed_images"
		case TypeExperiment:
			field = "results_images"
		default:
			continue
		}
		for _, name := range e.Fields.Images(field) {
			refs = append(refs, ImageRef{Filename: name, SourceType: e.Type, SourceField: field})
		}
	}
	return refs
}

func toRef(e Entry, title string) Ref {
	return Ref{
		ID:     e.ID,
		Type:   e.Type,
		Date:   e.Timestamp.Format("2006-01-02"),
		Title:  title,
		Tags:   e.Fields.Text("tags"),
		Status: e.Status,
	}
}

func removeByID(list []Entry, id string) ([]Entry, bool) {
	kept := list[:0]
	removed := false
	for _, e := range list {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}
