package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type postgresTx struct {
	tx    pgx.Tx
	clock clock.Clock
}

func (tx *postgresTx) Commit(ctx context.Context) error {
	if err := tx.tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (tx *postgresTx) Rollback(ctx context.Context) error {
	err := tx.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("error rolling back transaction: %w", err)
	}
	return nil
}

func (tx *postgresTx) now() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             tx.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
