package repository

import (
	"context"
	"time"

	"licenseadmin/internal/model"
)

// ActivityRepository persists the console's interaction log using SQL queries only.
// No business logic here; strictly persistence operations.
type ActivityRepository interface {
	// Create inserts a new activity record and returns the stored row.
	Create(ctx context.Context, a *model.Activity) (*model.Activity, error)

	// List returns a page of activity, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Activity], error)

	// ListBefore returns every activity created before the cutoff, oldest first.
	ListBefore(ctx context.Context, before time.Time) ([]model.Activity, error)

	// Prune deletes activity created before the cutoff and returns how many rows went.
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Discard is an ActivityRepository that stores nothing.
// It is used when no database is configured.
type Discard struct{}

var _ ActivityRepository = Discard{}

func (Discard) Create(_ context.Context, a *model.Activity) (*model.Activity, error) {
	return a, nil
}

func (Discard) List(_ context.Context, _ PageQuery) (*PageResult[model.Activity], error) {
	return &PageResult[model.Activity]{Items: []model.Activity{}}, nil
}

func (Discard) ListBefore(_ context.Context, _ time.Time) ([]model.Activity, error) {
	return nil, nil
}

func (Discard) Prune(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
