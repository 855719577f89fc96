package transferrepo

import (
	"context"

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

func (r *Repository) Save(ctx context.Context, transfer *domain.Transfer) (*domain.Transfer, error) {
	query := `
        INSERT INTO transfers (sender_id, receiver_id, points)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	row := r.db.QueryRow(ctx, query, transfer.SenderID, transfer.ReceiverID, transfer.Points)
	if err := row.Scan(&transfer.ID, &transfer.CreatedAt); err != nil {
		zap.L().Error("can't save transfer", zap.Error(err))
		return nil, err
	}
	return transfer, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transfer, error) {
	query := `
        SELECT id, sender_id, receiver_id, points, created_at
        FROM transfers
        WHERE sender_id = $1 OR receiver_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get transfers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(&t.ID, &t.SenderID, &t.ReceiverID, &t.Points, &t.CreatedAt); err != nil {
			zap.L().Error("can't scan transfer row", zap.Error(err))
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}
