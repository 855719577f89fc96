package transactionrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const txnColumns = "id, user_id, type, points, spent, status, needs_verification, related_id, processed_by, remark, created_at"

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Points, &t.Spent, &t.Status,
		&t.NeedsVerification, &t.RelatedID, &t.ProcessedBy, &t.Remark, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Save(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (user_id, type, points, spent, status, needs_verification, related_id, processed_by, remark)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	row := r.db.QueryRow(ctx, query, txn.UserID, txn.Type, txn.Points, txn.Spent,
		txn.Status, txn.NeedsVerification, txn.RelatedID, txn.ProcessedBy, txn.Remark)
	if err := row.Scan(&txn.ID, &txn.CreatedAt); err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE id = $1
    `
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find transaction", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

// FindByIDForUpdate locks the transaction row for the duration of the
// ambient transaction. Callers must run inside TXManager.Begin.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE id = $1
        FOR UPDATE
    `
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock transaction row", zap.Error(err))
		return nil, err
	}
	return txn, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txnColumns + `
        FROM transactions
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Points, &t.Spent, &t.Status,
			&t.NeedsVerification, &t.RelatedID, &t.ProcessedBy, &t.Remark, &t.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// MarkProcessed stamps the processing cashier and the final status on a
// pending transaction.
func (r *Repository) MarkProcessed(ctx context.Context, id int, processedBy int, status domain.TransactionStatus) error {
	query := `
        UPDATE transactions
        SET processed_by = $1, status = $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, processedBy, status, id); err != nil {
		zap.L().Error("can't mark transaction processed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetNeedsVerification(ctx context.Context, id int, needsVerification bool, status domain.TransactionStatus) error {
	query := `
        UPDATE transactions
        SET needs_verification = $1, status = $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, needsVerification, status, id); err != nil {
		zap.L().Error("can't update transaction verification state", zap.Error(err))
		return err
	}
	return nil
}
