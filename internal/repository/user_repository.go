package repository

import (
	"fmt"

	"github.com/lboucha/linkearn/internal/models"
	"gorm.io/gorm"
)

// UserRepository est une interface qui définit les méthodes d'accès aux données
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	AddEarnings(userID uint, rate float64) error
}

// GormUserRepository est l'implémentation de UserRepository utilisant GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository crée et retourne une nouvelle instance de GormUserRepository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// CreateUser insère un nouvel utilisateur dans la base de données.
func (r *GormUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail récupère un utilisateur par son adresse email.
func (r *GormUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID récupère un utilisateur par son identifiant.
func (r *GormUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAllUsers récupère tous les utilisateurs de la base de données.
func (r *GormUserRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve all users: %w", err)
	}
	return users, nil
}

// AddEarnings increments the user's accumulated earnings as an atomic SQL
// delta, mirroring the link-side accounting update.
func (r *GormUserRepository) AddEarnings(userID uint, rate float64) error {
	err := r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("earnings", gorm.Expr("earnings + ?", rate)).Error
	if err != nil {
		return fmt.Errorf("failed to add earnings for user ID %d: %w", userID, err)
	}
	return nil
}
