package repository

import (
	"context"
	"database/sql"

	"github.com/confetti-shop/backend/internal/model"
)

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List returns all categories ordered by id.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	const q = `SELECT id, name FROM categories ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new category. Name uniqueness is enforced by the unique
// key; violations surface as ErrDuplicateName.
func (r *CategoryRepo) Create(ctx context.Context, name string) (model.Category, error) {
	const q = `INSERT INTO categories (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Category{}, ErrDuplicateName
		}
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: uint64(id), Name: name}, nil
}

// Delete removes a category. The ON DELETE CASCADE constraint on
// products.category_id deletes its products in the same statement, which
// is the documented (destructive) behavior.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
