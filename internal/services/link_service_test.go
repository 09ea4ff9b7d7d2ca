package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/repository"
)

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// In-memory SQLite is per-connection; keep the pool at one so every
	// query sees the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}))
	return db
}

func setupLinkService(t *testing.T) (*LinkService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewLinkService(repository.NewLinkRepository(db)), db
}

func TestGenerateShortCode(t *testing.T) {
	svc, _ := setupLinkService(t)

	for i := 0; i < 50; i++ {
		code, err := svc.GenerateShortCode(6)
		require.NoError(t, err)
		assert.Regexp(t, shortCodePattern, code)
	}
}

func TestCreateLink_GeneratedCode(t *testing.T) {
	svc, _ := setupLinkService(t)

	link, err := svc.CreateLink("https://example.com", "", 1)
	require.NoError(t, err)

	assert.Regexp(t, shortCodePattern, link.ShortCode)
	assert.Equal(t, "https://example.com", link.LongURL)
	assert.Equal(t, uint(1), link.UserID)
	assert.Zero(t, link.Clicks)
	assert.Zero(t, link.Earnings)
}

func TestCreateLink_CustomAlias(t *testing.T) {
	svc, _ := setupLinkService(t)

	link, err := svc.CreateLink("https://example.com", "promo", 1)
	require.NoError(t, err)

	// The alias is taken verbatim, no normalization
	assert.Equal(t, "promo", link.ShortCode)
}

func TestCreateLink_DuplicateAlias(t *testing.T) {
	svc, _ := setupLinkService(t)

	_, err := svc.CreateLink("https://example.com", "promo", 1)
	require.NoError(t, err)

	_, err = svc.CreateLink("https://other.com", "promo", 2)
	assert.ErrorIs(t, err, apperrors.ErrAliasTaken)
}

// failingLinkRepo simulates losing the insert race on the unique index,
// which is the only collision guard for generated codes.
type failingLinkRepo struct {
	repository.LinkRepository
}

func (r *failingLinkRepo) CreateLink(link *models.Link) error {
	return gorm.ErrDuplicatedKey
}

func (r *failingLinkRepo) GetLinkByShortCode(code string) (*models.Link, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCreateLink_InsertCollision(t *testing.T) {
	svc := NewLinkService(&failingLinkRepo{})

	_, err := svc.CreateLink("https://example.com", "", 1)
	assert.ErrorIs(t, err, apperrors.ErrAliasTaken)
}

func TestGetLinksByUser_NewestFirst(t *testing.T) {
	linkSvc, gdb := setupLinkService(t)

	require.NoError(t, gdb.Create(&models.Link{ShortCode: "old111", LongURL: "https://a.example", UserID: 7}).Error)
	require.NoError(t, gdb.Exec("UPDATE links SET created_at = datetime('now', '-1 hour') WHERE short_code = 'old111'").Error)
	require.NoError(t, gdb.Create(&models.Link{ShortCode: "new222", LongURL: "https://b.example", UserID: 7}).Error)
	require.NoError(t, gdb.Create(&models.Link{ShortCode: "other1", LongURL: "https://c.example", UserID: 8}).Error)

	links, err := linkSvc.GetLinksByUser(7)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "new222", links[0].ShortCode)
	assert.Equal(t, "old111", links[1].ShortCode)
}

func TestGetLinkStats_NotFound(t *testing.T) {
	svc, _ := setupLinkService(t)

	_, err := svc.GetLinkStats("zzzzzz")
	assert.True(t, errors.Is(err, apperrors.ErrShortCodeNotFound))
}
