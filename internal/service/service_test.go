package service

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/haishi2/csc309-a3-sub000/internal/config"
	"github.com/haishi2/csc309-a3-sub000/internal/pg"
	"github.com/haishi2/csc309-a3-sub000/internal/repo"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	cfg := &config.Config{
		ResetTokenTTL:   time.Hour,
		LoginRatePerSec: 1.0,
		LoginBurst:      5,
	}
	repos := repo.New(mock)
	txManager := pg.NewMockTXManager(ctrl)

	services := New(cfg, repos, txManager)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.TransactionService)
	assert.NotNil(t, services.EventService)
	assert.NotNil(t, services.PromotionService)
	assert.NotNil(t, services.ResetTokens)
}
