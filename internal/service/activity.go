package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"licenseadmin/internal/model"
	"licenseadmin/internal/repository"
	"licenseadmin/internal/storage"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityListResult is the service-level DTO for paginated activity.
type ActivityListResult struct {
	Items  []model.Activity `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ActivityService exposes the console's interaction log.
type ActivityService interface {
	// List returns recorded activity, newest first.
	List(ctx context.Context, limit, offset int) (*ActivityListResult, error)

	// Prune removes activity older than retention. A non-positive retention is a no-op.
	// With an archive configured, the rows are uploaded first and kept if the upload fails.
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// ActivityOption configures the activity service.
type ActivityOption func(*activityService)

// WithArchive uploads pruned rows as JSON Lines under prefix before deleting them.
func WithArchive(store storage.Storage, prefix string, logger *zap.Logger) ActivityOption {
	return func(s *activityService) {
		s.archive = store
		s.archivePrefix = prefix
		if logger != nil {
			s.logger = logger
		}
	}
}

type activityService struct {
	repo          repository.ActivityRepository
	archive       storage.Storage
	archivePrefix string
	logger        *zap.Logger
	now           func() time.Time
}

// NewActivityService constructs a new ActivityService.
func NewActivityService(repo repository.ActivityRepository, opts ...ActivityOption) ActivityService {
	if repo == nil {
		repo = repository.Discard{}
	}
	s := &activityService{repo: repo, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *activityService) List(ctx context.Context, limit, offset int) (*ActivityListResult, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ActivityListResult{Items: res.Items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

func (s *activityService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-retention)

	if s.archive != nil {
		if err := s.archiveBefore(ctx, cutoff); err != nil {
			return 0, fmt.Errorf("archive activity: %w", err)
		}
	}
	return s.repo.Prune(ctx, cutoff)
}

// archiveBefore writes one object per prune run, keyed by the cutoff.
func (s *activityService) archiveBefore(ctx context.Context, cutoff time.Time) error {
	items, err := s.repo.ListBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range items {
		if err := enc.Encode(&items[i]); err != nil {
			return err
		}
	}

	key := ArchiveKey(s.archivePrefix, cutoff)
	info, err := s.archive.Put(ctx, key, &buf, storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: "application/x-ndjson",
		Metadata:    map[string]string{"rows": strconv.Itoa(len(items))},
	})
	if err != nil {
		return err
	}

	s.logger.Info("activity_archived",
		zap.String("key", info.Key),
		zap.Int("rows", len(items)),
		zap.Int64("bytes", info.Size),
	)
	return nil
}

// ArchiveKey names the archive object for a prune cutoff.
func ArchiveKey(prefix string, cutoff time.Time) string {
	return prefix + cutoff.UTC().Format("20060102T150405Z") + ".jsonl"
}
