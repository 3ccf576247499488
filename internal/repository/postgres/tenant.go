package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"

	"github.com/lib/pq"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	query := `INSERT INTO tenants (first_name, last_name, email, phone, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, t.FirstName, t.LastName, t.Email, t.Phone, time.Now(), time.Now()).Scan(&t.ID)
}

func (r *tenantRepository) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	query := `SELECT id, first_name, last_name, email, phone, created_on, updated_on FROM tenants WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tenantRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Tenant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, first_name, last_name, email, phone, created_on, updated_on FROM tenants WHERE id = ANY($1) ORDER BY last_name, first_name`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	query := `UPDATE tenants SET first_name=$1, last_name=$2, email=$3, phone=$4, updated_on=$5 WHERE id=$6`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, t.FirstName, t.LastName, t.Email, t.Phone, time.Now(), t.ID)
	return err
}

func (r *tenantRepository) Delete(ctx context.Context, id int32) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	return err
}

func (r *tenantRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Tenant, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM tenants`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, first_name, last_name, email, phone, created_on, updated_on
	          FROM tenants ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, t)
	}
	return tenants, count, rows.Err()
}
