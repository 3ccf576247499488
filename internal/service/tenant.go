package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type tenantService struct {
	tenantRepo repository.TenantRepository
}

func NewTenantService(tenantRepo repository.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

func (s *tenantService) CreateTenant(ctx context.Context, t *domain.Tenant) error {
	if t.FirstName == "" || t.LastName == "" {
		return apperr.Validationf("tenant first and last name are required")
	}
	if t.Email != "" && !strings.Contains(t.Email, "@") {
		return apperr.Validationf("invalid tenant email: %s", t.Email)
	}
	return s.tenantRepo.Create(ctx, t)
}

func (s *tenantService) GetTenant(ctx context.Context, id int32) (*domain.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("tenant %d not found", id)
	}
	return t, err
}

func (s *tenantService) UpdateTenant(ctx context.Context, t *domain.Tenant) error {
	if _, err := s.GetTenant(ctx, t.ID); err != nil {
		return err
	}
	if t.FirstName == "" || t.LastName == "" {
		return apperr.Validationf("tenant first and last name are required")
	}
	return s.tenantRepo.Update(ctx, t)
}

func (s *tenantService) DeleteTenant(ctx context.Context, id int32) error {
	if _, err := s.GetTenant(ctx, id); err != nil {
		return err
	}
	return s.tenantRepo.Delete(ctx, id)
}

func (s *tenantService) ListTenants(ctx context.Context, page, pageSize int32) ([]domain.Tenant, int32, error) {
	return s.tenantRepo.List(ctx, page, pageSize)
}
