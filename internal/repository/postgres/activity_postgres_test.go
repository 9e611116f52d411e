package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"licenseadmin/internal/model"
	"licenseadmin/internal/repository"
)

var activityColumns = []string{"id", "operation", "outcome", "license_key", "detail", "request_id", "created_at"}

func TestActivityPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &model.Activity{
		ID:         "test-uuid",
		Operation:  model.OperationValidate,
		Outcome:    model.OutcomeInvalid,
		LicenseKey: "ABCD****",
		Detail:     "expired",
		RequestID:  "rid-1",
		CreatedAt:  now,
	}

	rows := sqlmock.NewRows(activityColumns).
		AddRow(a.ID, "validate", "invalid", a.LicenseKey, a.Detail, a.RequestID, a.CreatedAt)

	mock.ExpectQuery("INSERT INTO activities").
		WithArgs(a.ID, "validate", "invalid", a.LicenseKey, a.Detail, a.RequestID, a.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, a)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, a.ID, result.ID)
	assert.Equal(t, model.OperationValidate, result.Operation)
	assert.Equal(t, model.OutcomeInvalid, result.Outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_Create_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)

	mock.ExpectQuery("INSERT INTO activities").WillReturnError(errors.New("insert failed"))

	result, err := repo.Create(context.Background(), &model.Activity{ID: "x"})

	assert.EqualError(t, err, "insert failed")
	assert.Nil(t, result)
}

func TestActivityPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM activities").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(activityColumns).
			AddRow("id-2", "stats", "success", "", "", "rid-2", time.Now()).
			AddRow("id-1", "create", "failed", "NEW-****", "401 Unauthorized", "rid-1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM activities ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, model.OperationStats, res.Items[0].Operation)
		assert.Equal(t, model.OutcomeFailed, res.Items[1].Outcome)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM activities").
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_ListBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("oldest first", func(t *testing.T) {
		rows := sqlmock.NewRows(activityColumns).
			AddRow("id-1", "validate", "success", "ABCD****", "", "rid-1", cutoff.Add(-48*time.Hour)).
			AddRow("id-2", "validate", "invalid", "ABCD****", "expired", "rid-2", cutoff.Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM activities WHERE created_at < \\$1 ORDER BY created_at ASC").
			WithArgs(cutoff).
			WillReturnRows(rows)

		items, err := repo.ListBefore(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "id-1", items[0].ID)
		assert.Equal(t, model.OutcomeInvalid, items[1].Outcome)
	})

	t.Run("nothing to archive", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM activities WHERE created_at").
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows(activityColumns))

		items, err := repo.ListBefore(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityPostgres_Prune(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewActivityPostgres(db)
	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectExec("DELETE FROM activities WHERE created_at < ?").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.Prune(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
