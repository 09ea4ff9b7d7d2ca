package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/repository"
)

// RedirectService resolves short codes to destination URLs and applies
// per-click accounting to both the link and its owner.
type RedirectService struct {
	linkRepo repository.LinkRepository
	userRepo repository.UserRepository
}

// NewRedirectService creates and returns a new instance of RedirectService.
func NewRedirectService(linkRepo repository.LinkRepository, userRepo repository.UserRepository) *RedirectService {
	return &RedirectService{
		linkRepo: linkRepo,
		userRepo: userRepo,
	}
}

// ResolveAndAccount looks up a short code and, when found, records one click
// at the resolved country rate against both the link and the owning user.
//
// The destination URL is returned whenever the lookup succeeds. The two
// accounting writes that follow are best-effort relative to the redirect:
// a failed increment is logged, never propagated, so a storage hiccup on the
// counters can't take redirects down with it. Both increments use the single
// rate value resolved at the start of the request.
func (s *RedirectService) ResolveAndAccount(code, countrySignal string) (string, error) {
	link, err := s.linkRepo.GetLinkByShortCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrShortCodeNotFound
		}
		return "", err
	}

	rate := RateForCountry(countrySignal)

	if err := s.linkRepo.ApplyClickAccounting(link.ID, rate); err != nil {
		log.Printf("ERROR: %v", apperrors.ErrAccountingFailed{ShortCode: code, Reason: err.Error()})
	}
	if err := s.userRepo.AddEarnings(link.UserID, rate); err != nil {
		log.Printf("ERROR: %v", apperrors.ErrAccountingFailed{ShortCode: code, Reason: err.Error()})
	}

	return link.LongURL, nil
}
