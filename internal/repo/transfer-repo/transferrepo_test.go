package transferrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/haishi2/csc309-a3-sub000/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully saves transfer",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transfers (sender_id, receiver_id, points) VALUES ($1, $2, $3) RETURNING id, created_at`)).
					WithArgs(1, 2, 30).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transfers (sender_id, receiver_id, points) VALUES ($1, $2, $3) RETURNING id, created_at`)).
					WithArgs(1, 2, 30).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			transfer := &domain.Transfer{SenderID: 1, ReceiverID: 2, Points: 30}
			saved, err := repo.Save(context.Background(), transfer)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 7, saved.ID)
				assert.Equal(t, createdAt, saved.CreatedAt)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	createdAt := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns transfers in either direction",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "sender_id", "receiver_id", "points", "created_at"}).
					AddRow(8, 2, 1, 15, createdAt).
					AddRow(7, 1, 2, 30, createdAt.Add(-time.Hour))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, sender_id, receiver_id, points, created_at FROM transfers WHERE sender_id = $1 OR receiver_id = $1 ORDER BY created_at DESC`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, sender_id, receiver_id, points, created_at FROM transfers WHERE sender_id = $1 OR receiver_id = $1 ORDER BY created_at DESC`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			transfers, err := repo.FindByUserID(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, transfers, tt.count)
				assert.Equal(t, 8, transfers[0].ID)
			}
		})
	}
}
