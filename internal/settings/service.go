package settings

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Service implements backup export and restore.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds Service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Export assembles the full snapshot. The four blocks are independent reads,
// so they run concurrently.
func (s *Service) Export(ctx context.Context) (Snapshot, error) {
	snapshot := Snapshot{Version: SnapshotVersion, Timestamp: s.now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot.Data.Users, err = s.store.Users(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Data.Categories, err = s.store.Categories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Data.Products, err = s.store.Products(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Data.Transactions, err = s.store.Sales(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// Import restores categories and products from a snapshot by upserting on
// their natural keys. Users and transactions in the file are ignored: import
// must never rewrite accounts or sale history.
func (s *Service) Import(ctx context.Context, snapshot Snapshot) (ImportSummary, error) {
	if snapshot.Version != SnapshotVersion {
		return ImportSummary{}, fmt.Errorf("%w: unsupported snapshot version %q", httpx.ErrValidation, snapshot.Version)
	}
	if len(snapshot.Data.Categories) == 0 && len(snapshot.Data.Products) == 0 {
		return ImportSummary{}, fmt.Errorf("%w: snapshot contains no categories or products", httpx.ErrValidation)
	}
	return s.store.ImportCatalog(ctx, snapshot.Data.Categories, snapshot.Data.Products)
}
