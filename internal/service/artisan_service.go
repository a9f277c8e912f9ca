package service

import (
	"context"
	"errors"

	"handcrafted-haven/internal/domain"
	"handcrafted-haven/internal/repository"

	"github.com/google/uuid"
)

// ArtisanService defines the interface for the artisan directory
type ArtisanService interface {
	ListArtisans(ctx context.Context, featuredOnly bool) ([]*domain.ArtisanProfile, error)
	GetArtisan(ctx context.Context, id uuid.UUID) (*domain.ArtisanDetail, bool, error)
}

type artisanService struct {
	artisanRepo repository.ArtisanRepository
}

// NewArtisanService creates a new instance of ArtisanService
func NewArtisanService(artisanRepo repository.ArtisanRepository) ArtisanService {
	return &artisanService{artisanRepo: artisanRepo}
}

func (s *artisanService) ListArtisans(ctx context.Context, featuredOnly bool) ([]*domain.ArtisanProfile, error) {
	return s.artisanRepo.List(ctx, featuredOnly)
}

// GetArtisan loads a profile and its stats; found=false when no profile has id
func (s *artisanService) GetArtisan(ctx context.Context, id uuid.UUID) (*domain.ArtisanDetail, bool, error) {
	artisan, err := s.artisanRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtisanNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	stats, err := s.artisanRepo.Stats(ctx, id)
	if err != nil {
		return nil, false, err
	}

	return &domain.ArtisanDetail{Artisan: artisan, Stats: stats}, true, nil
}
