package service

import (
	"context"
	"database/sql"
	"errors"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
	leaseRepo    repository.LeaseRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository, leaseRepo repository.LeaseRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo, leaseRepo: leaseRepo}
}

func (s *propertyService) CreateProperty(ctx context.Context, p *domain.Property) error {
	if p.Name == "" {
		return apperr.Validationf("property name is required")
	}
	if p.Address == "" {
		return apperr.Validationf("property address is required")
	}
	if p.Kind == "" {
		p.Kind = domain.PropertyKindOther
	}
	return s.propertyRepo.Create(ctx, p)
}

func (s *propertyService) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("property %d not found", id)
	}
	return p, err
}

func (s *propertyService) UpdateProperty(ctx context.Context, p *domain.Property) error {
	if _, err := s.GetProperty(ctx, p.ID); err != nil {
		return err
	}
	if p.Name == "" {
		return apperr.Validationf("property name is required")
	}
	return s.propertyRepo.Update(ctx, p)
}

func (s *propertyService) DeleteProperty(ctx context.Context, id int32) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}
	// A property under an active lease cannot be removed.
	if _, err := s.leaseRepo.GetActiveByProperty(ctx, id); err == nil {
		return apperr.Conflictf("property %d has an active lease", id)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return s.propertyRepo.Delete(ctx, id)
}

func (s *propertyService) ListProperties(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error) {
	return s.propertyRepo.List(ctx, page, pageSize)
}
