package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"plantstore_backend/platform/apperr"
)

const productNotFoundMessage = "product not found"

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO products (name, sku, description, base_price_cents, in_stock, in_season)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, sku, description, base_price_cents, in_stock, in_season, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.Name, params.SKU, params.Description, params.BasePriceCents, params.InStock, params.InSeason,
	).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.BasePriceCents, &product.InStock, &product.InSeason, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// UpdateProduct updates a product.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE products
		SET
			name = COALESCE($2, name),
			sku = COALESCE($3, sku),
			description = COALESCE($4, description),
			base_price_cents = COALESCE($5, base_price_cents),
			in_stock = COALESCE($6, in_stock),
			in_season = COALESCE($7, in_season),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, sku, description, base_price_cents, in_stock, in_season, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.SKU, params.Description,
		params.BasePriceCents, params.InStock, params.InSeason,
	).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.BasePriceCents, &product.InStock, &product.InSeason, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// DeleteProduct deletes a product. Its tier table goes with it via the
// foreign key cascade.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, name, sku, description, base_price_cents, in_stock, in_season, created_at, updated_at
		FROM products
		WHERE id = $1`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.BasePriceCents, &product.InStock, &product.InSeason, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.InStockOnly {
		whereClauses = append(whereClauses, "in_stock = TRUE")
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortColumn := "name"
	switch params.SortBy {
	case "sku":
		sortColumn = "sku"
	case "basePriceCents":
		sortColumn = "base_price_cents"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, name, sku, description, base_price_cents, in_stock, in_season, created_at, updated_at
		FROM products
		WHERE %s
		ORDER BY %s %s, name ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&product.ID, &product.Name, &product.SKU, &product.Description,
			&product.BasePriceCents, &product.InStock, &product.InSeason, &createdAt, &updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		product.CreatedAt = createdAt.Format(time.RFC3339)
		product.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, total, nil
}

// GetProductTiers returns the product's tier table ordered by ascending
// min_quantity. Row order is the order the pricing scan uses.
func (r *Repo) GetProductTiers(ctx context.Context, productID uuid.UUID) ([]PriceTier, error) {
	query := `
		SELECT id, product_id, min_quantity, max_quantity, discount_bps
		FROM price_tiers
		WHERE product_id = $1
		ORDER BY min_quantity ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("get product tiers: %w", err)
	}
	defer rows.Close()

	tiers := make([]PriceTier, 0)
	for rows.Next() {
		var tier PriceTier
		if err := rows.Scan(&tier.ID, &tier.ProductID, &tier.MinQuantity, &tier.MaxQuantity, &tier.DiscountBps); err != nil {
			return nil, fmt.Errorf("scan price tier: %w", err)
		}
		tiers = append(tiers, tier)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate price tiers: %w", rows.Err())
	}

	return tiers, nil
}

// ReplaceProductTiers swaps the product's whole tier table in one
// transaction so readers never observe a partial table.
func (r *Repo) ReplaceProductTiers(ctx context.Context, productID uuid.UUID, tiers []TierParams) ([]PriceTier, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin replace tiers: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check product exists: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound(productNotFoundMessage)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM price_tiers WHERE product_id = $1`, productID); err != nil {
		return nil, fmt.Errorf("delete price tiers: %w", err)
	}

	insertQuery := `
		INSERT INTO price_tiers (product_id, min_quantity, max_quantity, discount_bps)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, min_quantity, max_quantity, discount_bps`

	result := make([]PriceTier, 0, len(tiers))
	for _, params := range tiers {
		var tier PriceTier
		if err := tx.QueryRow(ctx, insertQuery,
			productID, params.MinQuantity, params.MaxQuantity, params.DiscountBps,
		).Scan(&tier.ID, &tier.ProductID, &tier.MinQuantity, &tier.MaxQuantity, &tier.DiscountBps); err != nil {
			return nil, fmt.Errorf("insert price tier: %w", err)
		}
		result = append(result, tier)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit replace tiers: %w", err)
	}

	return result, nil
}
