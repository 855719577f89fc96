package promotionrepo

import (
	"context"
	"errors"
	"time"

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

const promotionColumns = "id, name, description, type, start_time, end_time, min_spend, rate, points, manager_id"

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.StartTime, &p.EndTime,
		&p.MinSpend, &p.Rate, &p.Points, &p.ManagerID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Promotion, error) {
	query := `
        SELECT ` + promotionColumns + `
        FROM promotions
        WHERE id = $1
    `
	p, err := scanPromotion(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find promotion", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// FindByIDs returns the promotions for the given ids, keyed by id. Missing
// ids are simply absent from the map.
func (r *Repository) FindByIDs(ctx context.Context, ids []int) (map[int]domain.Promotion, error) {
	query := `
        SELECT ` + promotionColumns + `
        FROM promotions
        WHERE id = ANY($1)
    `
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		zap.L().Error("can't get promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	promotions := make(map[int]domain.Promotion, len(ids))
	for rows.Next() {
		var p domain.Promotion
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.StartTime, &p.EndTime,
			&p.MinSpend, &p.Rate, &p.Points, &p.ManagerID)
		if err != nil {
			zap.L().Error("can't scan promotion row", zap.Error(err))
			return nil, err
		}
		promotions[p.ID] = p
	}
	return promotions, nil
}

func (r *Repository) FindActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	query := `
        SELECT ` + promotionColumns + `
        FROM promotions
        WHERE start_time <= $1 AND end_time >= $1
        ORDER BY start_time ASC
    `
	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		zap.L().Error("can't get active promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var promotions []domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.StartTime, &p.EndTime,
			&p.MinSpend, &p.Rate, &p.Points, &p.ManagerID)
		if err != nil {
			zap.L().Error("can't scan promotion row", zap.Error(err))
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (r *Repository) Save(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	query := `
        INSERT INTO promotions (name, description, type, start_time, end_time, min_spend, rate, points, manager_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	row := r.db.QueryRow(ctx, query, p.Name, p.Description, p.Type, p.StartTime, p.EndTime,
		p.MinSpend, p.Rate, p.Points, p.ManagerID)
	if err := row.Scan(&p.ID); err != nil {
		zap.L().Error("can't save promotion", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM promotions
        WHERE id = $1
    `
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't delete promotion", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindUse(ctx context.Context, userID, promotionID int) (*domain.PromotionUse, error) {
	query := `
        SELECT id, user_id, promotion_id, transaction_id, used_at
        FROM promotion_uses
        WHERE user_id = $1 AND promotion_id = $2
    `
	row := r.db.QueryRow(ctx, query, userID, promotionID)
	var use domain.PromotionUse
	err := row.Scan(&use.ID, &use.UserID, &use.PromotionID, &use.TransactionID, &use.UsedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find promotion use", zap.Error(err))
		return nil, err
	}
	return &use, nil
}

// RecordUse inserts the use row that marks a promotion consumed by a user.
// The unique (user_id, promotion_id) index is the last line of defense
// against a double-apply racing past the service-level check.
func (r *Repository) RecordUse(ctx context.Context, use *domain.PromotionUse) error {
	query := `
        INSERT INTO promotion_uses (user_id, promotion_id, transaction_id)
        VALUES ($1, $2, $3)
    `
	if _, err := r.db.Exec(ctx, query, use.UserID, use.PromotionID, use.TransactionID); err != nil {
		zap.L().Error("can't record promotion use", zap.Error(err))
		return err
	}
	return nil
}
