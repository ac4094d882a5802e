package repository

import (
	"context"

	"supplier-registry-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SupplierRepository handles database operations for suppliers
type SupplierRepository struct {
	db *pgxpool.Pool
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Insert persists a new supplier record and fills in its generated
// identifier and creation timestamp
func (r *SupplierRepository) Insert(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (
			business_name, company_id, contact_name, phone, email, about,
			categories, activity_areas, website, instagram, address,
			logo_url, image_urls, catalog_kind, catalog_text, catalog_url,
			status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		supplier.BusinessName,
		supplier.CompanyID,
		supplier.ContactName,
		supplier.Phone,
		supplier.Email,
		supplier.About,
		supplier.Categories,
		supplier.ActivityAreas,
		supplier.Website,
		supplier.Instagram,
		supplier.Address,
		supplier.LogoURL,
		supplier.ImageURLs,
		supplier.CatalogKind,
		supplier.CatalogText,
		supplier.CatalogURL,
		supplier.Status,
	).Scan(&supplier.ID, &supplier.CreatedAt)

	return err
}

// GetByID retrieves a supplier by ID
func (r *SupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `
		SELECT id, business_name, company_id, contact_name, phone, email, about,
			categories, activity_areas, website, instagram, address,
			logo_url, image_urls, catalog_kind, catalog_text, catalog_url,
			status, created_at
		FROM suppliers
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&supplier.ID,
		&supplier.BusinessName,
		&supplier.CompanyID,
		&supplier.ContactName,
		&supplier.Phone,
		&supplier.Email,
		&supplier.About,
		&supplier.Categories,
		&supplier.ActivityAreas,
		&supplier.Website,
		&supplier.Instagram,
		&supplier.Address,
		&supplier.LogoURL,
		&supplier.ImageURLs,
		&supplier.CatalogKind,
		&supplier.CatalogText,
		&supplier.CatalogURL,
		&supplier.Status,
		&supplier.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return supplier, nil
}
