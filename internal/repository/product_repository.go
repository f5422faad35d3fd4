package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/confetti-shop/backend/internal/model"
)

// ProductRepo encapsulates all database queries related to products,
// including the expiry-window reads used by the back-office reporting.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the provided DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// productCols is the column list shared by every product read. Each
// product row is joined with its category so listings can render the
// category name without a second round trip.
const productCols = `p.id, p.name, p.description, p.price, p.image_url,
	p.category_id, p.expiry_date, c.id, c.name`

const productFrom = ` FROM products p JOIN categories c ON c.id = p.category_id`

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var (
		p      model.Product
		desc   sql.NullString
		img    sql.NullString
		expiry sql.NullTime
		cat    model.Category
	)
	err := row.Scan(&p.ID, &p.Name, &desc, &p.Price, &img,
		&p.CategoryID, &expiry, &cat.ID, &cat.Name)
	if err != nil {
		return model.Product{}, err
	}
	p.Description = desc.String
	if img.Valid && img.String != "" {
		im := model.ParseImage(img.String)
		p.Image = &im
	}
	if expiry.Valid {
		t := expiry.Time
		p.ExpiryDate = &t
	}
	p.Category = &cat
	return p, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all products, optionally restricted to a single category.
func (r *ProductRepo) List(ctx context.Context, categoryID *uint64) ([]model.Product, error) {
	q := `SELECT ` + productCols + productFrom
	var args []any
	if categoryID != nil {
		q += ` WHERE p.category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY p.id`
	return r.queryProducts(ctx, q, args...)
}

// GetByID fetches one product with its category. Returns
// ErrProductNotFound when absent.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	q := `SELECT ` + productCols + productFrom + ` WHERE p.id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, err
	}
	return p, nil
}

// Create inserts a new product and returns it with the generated id and
// category detail populated.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	const q = `INSERT INTO products (name, description, price, image_url, category_id, expiry_date)
	           VALUES (?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, nullStr(p.Description), p.Price, imageRaw(p.Image), p.CategoryID, nullTime(p.ExpiryDate))
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Update overwrites every editable field of an existing product, matching
// the PUT semantics of the API. Returns ErrProductNotFound when the id
// does not exist.
func (r *ProductRepo) Update(ctx context.Context, id uint64, p model.Product) (model.Product, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Product{}, err
	}
	const q = `UPDATE products
	           SET name = ?, description = ?, price = ?, image_url = ?, category_id = ?, expiry_date = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		p.Name, nullStr(p.Description), p.Price, imageRaw(p.Image), p.CategoryID, nullTime(p.ExpiryDate), id); err != nil {
		return model.Product{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product. Historical order items keep their own price
// snapshot, so nothing else is touched.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListExpired returns products whose expiry date is set and strictly
// before now. Comparison is continuous-time, no day truncation.
func (r *ProductRepo) ListExpired(ctx context.Context, now time.Time) ([]model.Product, error) {
	q := `SELECT ` + productCols + productFrom +
		` WHERE p.expiry_date IS NOT NULL AND p.expiry_date < ? ORDER BY p.expiry_date`
	return r.queryProducts(ctx, q, now)
}

// ListExpiringSoon returns products expiring within [now, until], upper
// bound inclusive.
func (r *ProductRepo) ListExpiringSoon(ctx context.Context, now, until time.Time) ([]model.Product, error) {
	q := `SELECT ` + productCols + productFrom +
		` WHERE p.expiry_date IS NOT NULL AND p.expiry_date >= ? AND p.expiry_date <= ? ORDER BY p.expiry_date`
	return r.queryProducts(ctx, q, now, until)
}

// ExpiryStatistics counts products per expiry window in a single scan.
// The windows are consecutive and non-overlapping: expired (< now), week
// [now, now+7d), month [now+7d, now+30d).
func (r *ProductRepo) ExpiryStatistics(ctx context.Context, now time.Time) (model.ExpiryStats, error) {
	week := now.AddDate(0, 0, 7)
	month := now.AddDate(0, 0, 30)
	const q = `SELECT
		COALESCE(SUM(expiry_date IS NOT NULL AND expiry_date < ?), 0),
		COALESCE(SUM(expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date < ?), 0),
		COALESCE(SUM(expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date < ?), 0),
		COALESCE(SUM(expiry_date IS NOT NULL), 0),
		COUNT(*)
		FROM products`
	var s model.ExpiryStats
	err := r.db.QueryRowContext(ctx, q, now, now, week, week, month).Scan(
		&s.Expired, &s.ExpiringWeek, &s.ExpiringMonth, &s.TotalWithExpiry, &s.TotalProducts)
	return s, err
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func imageRaw(im *model.Image) any {
	if im == nil || im.URL == "" {
		return nil
	}
	return im.Raw()
}
