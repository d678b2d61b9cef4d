package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
)

var txOpts = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}

func newUoW(t *testing.T) (*UoW, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewUoW(postgresrepo.NewStore(mock)), mock
}

func TestDo_RunsHooksAfterCommit(t *testing.T) {
	u, mock := newUoW(t)

	mock.ExpectBeginTx(txOpts)
	mock.ExpectExec("DELETE FROM venues").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	var ran []string
	err := u.Do(context.Background(), func(ctx context.Context, tx postgresrepo.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = append(ran, "first") })
		after(func(context.Context) { ran = append(ran, "second") })

		_, err := tx.Exec(ctx, "DELETE FROM venues WHERE id = $1", int64(1))
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ran)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_SkipsHooksOnRollback(t *testing.T) {
	u, mock := newUoW(t)
	boom := errors.New("boom")

	mock.ExpectBeginTx(txOpts)
	mock.ExpectRollback()

	ran := false
	err := u.Do(context.Background(), func(ctx context.Context, tx postgresrepo.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_SkipsHooksWhenCommitFails(t *testing.T) {
	u, mock := newUoW(t)

	mock.ExpectBeginTx(txOpts)
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	mock.ExpectRollback()

	ran := false
	err := u.Do(context.Background(), func(ctx context.Context, tx postgresrepo.DB, after func(AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
	assert.False(t, ran)
}
