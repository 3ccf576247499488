package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (name, address, city, postal_code, kind, surface_m2, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, p.Name, p.Address, p.City, p.PostalCode, p.Kind, p.SurfaceM2, p.Description, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	p := &domain.Property{}
	query := `SELECT id, name, address, city, postal_code, kind, surface_m2, description, created_on, updated_on FROM properties WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.PostalCode, &p.Kind, &p.SurfaceM2, &p.Description, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET name=$1, address=$2, city=$3, postal_code=$4, kind=$5, surface_m2=$6, description=$7, updated_on=$8 WHERE id=$9`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, p.Name, p.Address, p.City, p.PostalCode, p.Kind, p.SurfaceM2, p.Description, time.Now(), p.ID)
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id int32) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	return err
}

func (r *propertyRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM properties`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, name, address, city, postal_code, kind, surface_m2, description, created_on, updated_on
	          FROM properties ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.PostalCode, &p.Kind, &p.SurfaceM2, &p.Description, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		properties = append(properties, p)
	}
	return properties, count, rows.Err()
}
