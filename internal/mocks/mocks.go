// Package mocks provides testify mocks for the service-facing storage
// interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ymori/labnote/internal/domain/entry"
)

// DocumentStore is a mock for entry.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Load(ctx context.Context) (entries, drafts []entry.Entry) {
	args := m.Called(ctx)
	entries, _ = args.Get(0).([]entry.Entry)
	drafts, _ = args.Get(1).([]entry.Entry)
	return entries, drafts
}

func (m *DocumentStore) SaveEntries(ctx context.Context, entries, drafts []entry.Entry) error {
	args := m.Called(ctx, entries, drafts)
	return args.Error(0)
}

func (m *DocumentStore) SaveDrafts(ctx context.Context, drafts []entry.Entry) error {
	args := m.Called(ctx, drafts)
	return args.Error(0)
}
