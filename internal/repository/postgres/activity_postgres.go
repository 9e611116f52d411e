package postgres

import (
	"context"
	"database/sql"
	"time"

	"licenseadmin/internal/model"
	"licenseadmin/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Create inserts a new activity row and returns the stored record.
func (r *ActivityPostgres) Create(ctx context.Context, a *model.Activity) (*model.Activity, error) {
	const q = `
		INSERT INTO activities (id, operation, outcome, license_key, detail, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, operation, outcome, license_key, detail, request_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		string(a.Operation),
		string(a.Outcome),
		a.LicenseKey,
		a.Detail,
		a.RequestID,
		a.CreatedAt,
	)
	out, err := scanActivity(row)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns activity using LIMIT/OFFSET pagination and a total count.
func (r *ActivityPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Activity], error) {
	const qCount = `SELECT COUNT(*) FROM activities`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, operation, outcome, license_key, detail, request_id, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Activity]{
		Items: items,
		Total: total,
	}, nil
}

// ListBefore returns activity older than before, oldest first, for archiving.
func (r *ActivityPostgres) ListBefore(ctx context.Context, before time.Time) ([]model.Activity, error) {
	const q = `
		SELECT id, operation, outcome, license_key, detail, request_id, created_at
		FROM activities
		WHERE created_at < $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// Prune removes activity older than before.
func (r *ActivityPostgres) Prune(ctx context.Context, before time.Time) (int64, error) {
	const q = `DELETE FROM activities WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, q, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*model.Activity, error) {
	var (
		a         model.Activity
		operation string
		outcome   string
	)
	if err := s.Scan(
		&a.ID,
		&operation,
		&outcome,
		&a.LicenseKey,
		&a.Detail,
		&a.RequestID,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Operation = model.Operation(operation)
	a.Outcome = model.Outcome(outcome)
	return &a, nil
}
