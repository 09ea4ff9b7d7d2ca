// Package services contains the business logic layer for the link monetization service
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/models"
	"github.com/lboucha/linkearn/internal/repository"
)

// charset defines the character set used for generating short codes.
// Uses alphanumeric characters (both cases) for a total of 62 possible characters.
// This gives us 62^6 = ~56 billion possible combinations for 6-character codes.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// codeLength is the length of generated short codes.
const codeLength = 6

// LinkService provides business logic methods for managing shortened links.
// It acts as an intermediary between the HTTP handlers and the data repository.
type LinkService struct {
	linkRepo repository.LinkRepository // Repository interface for database operations
}

// NewLinkService creates and returns a new instance of LinkService.
func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{
		linkRepo: linkRepo,
	}
}

// GenerateShortCode generates a cryptographically secure random short code.
func (s *LinkService) GenerateShortCode(length int) (string, error) {
	code := make([]byte, length)

	for i := range code {
		// Use crypto/rand for cryptographically secure random numbers
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateLink creates a new shortened link owned by the given user.
//
// When a custom alias is supplied it is taken verbatim as the short code after
// an existence check; a taken alias fails with ErrAliasTaken. Without an alias
// a random 6-character code is generated and inserted without a pre-insert
// recheck: the database unique index is the sole collision guard, and a
// violation at insert time surfaces as ErrAliasTaken as well. That keeps two
// concurrent claims on the same code from ever corrupting the first record.
func (s *LinkService) CreateLink(longURL, customAlias string, userID uint) (*models.Link, error) {
	var shortCode string

	if customAlias != "" {
		// Check if the requested alias is already claimed
		_, err := s.linkRepo.GetLinkByShortCode(customAlias)
		if err == nil {
			return nil, apperrors.ErrAliasTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("database error checking alias availability: %w", err)
		}
		shortCode = customAlias
	} else {
		code, err := s.GenerateShortCode(codeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}
		shortCode = code
	}

	link := &models.Link{
		ShortCode: shortCode,
		LongURL:   longURL,
		UserID:    userID,
	}

	if err := s.linkRepo.CreateLink(link); err != nil {
		// A lost race on the unique index gets the same treatment as a taken alias
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAliasTaken
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

// GetLinksByUser returns the links owned by a user, newest first.
func (s *LinkService) GetLinksByUser(userID uint) ([]models.Link, error) {
	return s.linkRepo.GetLinksByUserID(userID)
}

// GetLinkStats retrieves a link and its accumulated click statistics.
func (s *LinkService) GetLinkStats(shortCode string) (*models.Link, error) {
	link, err := s.linkRepo.GetLinkByShortCode(shortCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrShortCodeNotFound
		}
		return nil, err
	}
	return link, nil
}
