package mock

import (
	"context"

	"github.com/fwojciec/ogmeta"
)

var _ ogmeta.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of ogmeta.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, snapshot *ogmeta.Snapshot) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, snapshot *ogmeta.Snapshot) error {
	return s.SaveFn(ctx, snapshot)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}
