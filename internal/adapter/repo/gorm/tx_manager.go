package gormrepo

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"doorhop/internal/app/ports"
)

// TxManager runs handlers at REPEATABLE READ so every read inside one invocation sees the
// same snapshot; a concurrent write to a row the handler also writes surfaces as ErrConflict.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil && !errors.Is(err, ports.ErrConflict) && isSerializationFailure(err) {
		return mapError(err)
	}
	return err
}
