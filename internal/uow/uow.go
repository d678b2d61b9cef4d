package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	postgresrepo "github.com/kirinyoku/fyyur/internal/repository/postgres"
)

// AfterCommit runs once the transaction has committed.
type AfterCommit func(ctx context.Context)

// Work is the body of a unit of work. Hooks registered through after run
// only when every statement issued on tx has been committed.
type Work func(ctx context.Context, tx postgresrepo.DB, after func(AfterCommit)) error

// UoW groups repository writes into one transaction.
type UoW struct {
	store *postgresrepo.Store
}

func NewUoW(store *postgresrepo.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn in a read-committed transaction.
func (u *UoW) Do(ctx context.Context, fn Work) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts runs fn in a transaction with the given options. Hooks are
// dropped if fn fails or the commit does.
func (u *UoW) DoWithOpts(ctx context.Context, opts *pgx.TxOptions, fn Work) error {
	var hooks []AfterCommit

	err := u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgresrepo.DB) error {
		return fn(ctx, tx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
