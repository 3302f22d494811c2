package repositories

import "context"

// TxFn is a function that runs within a unit of work
type TxFn func(ctx context.Context) error

// TransactionManager groups several repository calls into one unit of work.
// Request handling never uses it (one statement per operation); bulk
// loaders such as the seeder do.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
