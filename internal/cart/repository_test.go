package cart

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRepositoryClear_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Clear(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryClear_NoCartIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE user_id = $1`)).
		WithArgs("user-empty").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Clear(context.Background(), "user-empty"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryClear_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnError(errors.New("db down"))

	require.Error(t, repo.Clear(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
