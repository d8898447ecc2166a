package repository

import "context"

// TxManager runs a function inside one database transaction. The transaction
// handle travels in the context, so every repository call made with the
// callback's context joins the same transaction; any returned error rolls the
// whole transaction back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
