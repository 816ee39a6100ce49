package repository

import (
	"context"
	"database/sql"

	"github.com/rezamb/canteen-ordering/internal/model"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productCols = "id,name,description,category,price_cents,image_url,available,created_at,updated_at"

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceCents,
		&p.ImageURL, &p.Available, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns catalog products.  category filters when non-empty;
// availableOnly hides products the canteen has switched off.
func (r *ProductRepo) List(ctx context.Context, category string, availableOnly bool) ([]model.Product, error) {
	q := "SELECT " + productCols + " FROM products"
	var args []any
	var conds []string
	if category != "" {
		conds = append(conds, "category=?")
		args = append(args, category)
	}
	if availableOnly {
		conds = append(conds, "available=1")
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY category, name"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches a single product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	return scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id))
}

// Create inserts a product and returns its ID.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name,description,category,price_cents,image_url,available) VALUES (?,?,?,?,?,?)",
		p.Name, p.Description, p.Category, p.PriceCents, p.ImageURL, p.Available)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites all mutable columns of a product.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET name=?,description=?,category=?,price_cents=?,image_url=?,available=?,updated_at=NOW() WHERE id=?",
		p.Name, p.Description, p.Category, p.PriceCents, p.ImageURL, p.Available, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailability toggles whether a product can be ordered.
func (r *ProductRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET available=?, updated_at=NOW() WHERE id=?", available, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product.  Existing order_items keep their snapshots.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
