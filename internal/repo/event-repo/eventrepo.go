package eventrepo

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

const eventColumns = "id, name, location, start_time, end_time, capacity, total_points, points_remain, points_awarded, published"

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Name, &e.Location, &e.StartTime, &e.EndTime, &e.Capacity,
		&e.TotalPoints, &e.PointsRemain, &e.PointsAwarded, &e.Published)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) GetByID(ctx context.Context, eventID int) (*domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE id = $1
    `
	event, err := scanEvent(r.db.QueryRow(ctx, query, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find event", zap.Error(err))
		return nil, err
	}
	return event, nil
}

// GetForUpdate locks the event row so concurrent awards against the same
// budget serialize. Callers must run inside TXManager.Begin.
func (r *Repository) GetForUpdate(ctx context.Context, eventID int) (*domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE id = $1
        FOR UPDATE
    `
	event, err := scanEvent(r.db.QueryRow(ctx, query, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock event row", zap.Error(err))
		return nil, err
	}
	return event, nil
}

// SpendPoints moves amount from the remaining budget to the awarded total.
func (r *Repository) SpendPoints(ctx context.Context, eventID int, amount int) error {
	query := `
        UPDATE events
        SET points_remain = points_remain - $1, points_awarded = points_awarded + $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, amount, eventID); err != nil {
		zap.L().Error("can't spend event points", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Save(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
        INSERT INTO events (name, location, start_time, end_time, capacity, total_points, points_remain, published)
        VALUES ($1, $2, $3, $4, $5, $6, $6, $7)
        RETURNING id, points_awarded
    `
	row := r.db.QueryRow(ctx, query, event.Name, event.Location, event.StartTime, event.EndTime,
		event.Capacity, event.TotalPoints, event.Published)
	if err := row.Scan(&event.ID, &event.PointsAwarded); err != nil {
		zap.L().Error("can't save event", zap.Error(err))
		return nil, err
	}
	event.PointsRemain = event.TotalPoints
	return event, nil
}

func (r *Repository) IsGuest(ctx context.Context, eventID, userID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM event_guests WHERE event_id = $1 AND user_id = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, eventID, userID).Scan(&exists); err != nil {
		zap.L().Error("can't check event guest", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) IsOrganizer(ctx context.Context, eventID, userID int) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM event_organizers WHERE event_id = $1 AND user_id = $2
        )
    `
	var exists bool
	if err := r.db.QueryRow(ctx, query, eventID, userID).Scan(&exists); err != nil {
		zap.L().Error("can't check event organizer", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) ListGuestIDs(ctx context.Context, eventID int) ([]int, error) {
	query := `
        SELECT user_id
        FROM event_guests
        WHERE event_id = $1
        ORDER BY user_id ASC
    `
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		zap.L().Error("can't get event guests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var guests []int
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			zap.L().Error("can't scan guest row", zap.Error(err))
			return nil, err
		}
		guests = append(guests, userID)
	}
	return guests, nil
}

func (r *Repository) CountGuests(ctx context.Context, eventID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM event_guests
        WHERE event_id = $1
    `
	var count int
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		zap.L().Error("can't count event guests", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) AddGuest(ctx context.Context, eventID, userID int) error {
	query := `
        INSERT INTO event_guests (event_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, eventID, userID); err != nil {
		zap.L().Error("can't add event guest", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AddOrganizer(ctx context.Context, eventID, userID int) error {
	query := `
        INSERT INTO event_organizers (event_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, eventID, userID); err != nil {
		zap.L().Error("can't add event organizer", zap.Error(err))
		return err
	}
	return nil
}
