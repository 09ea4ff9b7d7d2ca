package repository

import (
	"fmt"

	"github.com/lboucha/linkearn/internal/models"
	"gorm.io/gorm"
)

// LinkRepository est une interface qui définit les méthodes d'accès aux données
type LinkRepository interface {
	CreateLink(link *models.Link) error
	GetLinkByShortCode(shortCode string) (*models.Link, error)
	GetLinksByUserID(userID uint) ([]models.Link, error)
	GetAllLinks() ([]models.Link, error)
	ApplyClickAccounting(linkID uint, rate float64) error
}

// GormLinkRepository est l'implémentation de LinkRepository utilisant GORM.
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository crée et retourne une nouvelle instance de GormLinkRepository.
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// CreateLink insère un nouveau lien dans la base de données.
// A unique-index violation on the short code surfaces as gorm.ErrDuplicatedKey,
// which callers map to alias-taken semantics.
func (r *GormLinkRepository) CreateLink(link *models.Link) error {
	if err := r.db.Create(link).Error; err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// GetLinkByShortCode récupère un lien de la base de données en utilisant son shortCode.
func (r *GormLinkRepository) GetLinkByShortCode(shortCode string) (*models.Link, error) {
	var link models.Link
	if err := r.db.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinksByUserID récupère les liens d'un utilisateur, les plus récents d'abord.
func (r *GormLinkRepository) GetLinksByUserID(userID uint) ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve links for user %d: %w", userID, err)
	}
	return links, nil
}

// GetAllLinks récupère tous les liens de la base de données.
func (r *GormLinkRepository) GetAllLinks() ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all links: %w", err)
	}
	return links, nil
}

// ApplyClickAccounting increments the link's click counter and earnings in a
// single UPDATE using SQL expressions. Concurrent redirects on the same code
// must never lose updates, so the deltas are applied in the database rather
// than read-modify-written in Go.
func (r *GormLinkRepository) ApplyClickAccounting(linkID uint, rate float64) error {
	err := r.db.Model(&models.Link{}).Where("id = ?", linkID).Updates(map[string]interface{}{
		"clicks":   gorm.Expr("clicks + ?", 1),
		"earnings": gorm.Expr("earnings + ?", rate),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to apply click accounting for link ID %d: %w", linkID, err)
	}
	return nil
}
