package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/repository"
)

func setupRedirectService(t *testing.T) (*RedirectService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewRedirectService(repository.NewLinkRepository(db), repository.NewUserRepository(db)), db
}

func TestResolveAndAccount_USClick(t *testing.T) {
	svc, db := setupRedirectService(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(&models.Link{ShortCode: "abc123", LongURL: "https://example.com", UserID: owner.ID}).Error)

	destination, err := svc.ResolveAndAccount("abc123", "US")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", destination)

	var link models.Link
	require.NoError(t, db.Where("short_code = ?", "abc123").First(&link).Error)
	assert.Equal(t, int64(1), link.Clicks)
	assert.InDelta(t, 0.01, link.Earnings, 1e-9)

	var user models.User
	require.NoError(t, db.First(&user, owner.ID).Error)
	assert.InDelta(t, 0.01, user.Earnings, 1e-9)
}

func TestResolveAndAccount_RatesAccumulate(t *testing.T) {
	svc, db := setupRedirectService(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(&models.Link{ShortCode: "abc123", LongURL: "https://example.com", UserID: owner.ID}).Error)

	// One click per tier: US, DE, missing signal (counts as US), unknown country
	for _, signal := range []string{"US", "DE", "", "XX"} {
		_, err := svc.ResolveAndAccount("abc123", signal)
		require.NoError(t, err)
	}

	var link models.Link
	require.NoError(t, db.Where("short_code = ?", "abc123").First(&link).Error)
	assert.Equal(t, int64(4), link.Clicks)
	assert.InDelta(t, 0.01+0.005+0.01+0.001, link.Earnings, 1e-9)

	var user models.User
	require.NoError(t, db.First(&user, owner.ID).Error)
	assert.InDelta(t, link.Earnings, user.Earnings, 1e-9)
}

func TestResolveAndAccount_UnknownCode(t *testing.T) {
	svc, db := setupRedirectService(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(&models.Link{ShortCode: "abc123", LongURL: "https://example.com", UserID: owner.ID}).Error)

	_, err := svc.ResolveAndAccount("zzzzzz", "US")
	assert.ErrorIs(t, err, apperrors.ErrShortCodeNotFound)

	// A failed lookup must leave the store untouched
	var link models.Link
	require.NoError(t, db.Where("short_code = ?", "abc123").First(&link).Error)
	assert.Zero(t, link.Clicks)
	assert.Zero(t, link.Earnings)
}
