package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteByIDAndOwner_ForbiddenRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM venues").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(99))
	mock.ExpectRollback()

	err := repo.DeleteByIDAndOwner(context.Background(), 7, 3)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDAndOwner_CommitFailureSurfaced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVenueRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM venues").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(3))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM opening_hours").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM venues").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("invalid connection"))

	err := repo.DeleteByIDAndOwner(context.Background(), 7, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid connection")
	assert.NoError(t, mock.ExpectationsWereMet())
}
