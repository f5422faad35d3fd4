package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/confetti-shop/backend/internal/model"
)

// OrderRepo provides persistence for orders and their items. Order
// creation is the one multi-write operation in the system and runs inside
// an explicit transaction so a failed item insert never leaves a headless
// order behind.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create persists an order owned by userID together with all its items.
// Item prices are stored exactly as submitted: they are the snapshot that
// keeps order history stable when product prices change later. The created
// order is returned fully populated (items and product detail).
func (r *OrderRepo) Create(ctx context.Context, userID uint64, total float64, items []model.OrderItem) (*model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total, status) VALUES (?,?,?)`,
		userID, total, model.StatusPending)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		q := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES `
		args := make([]any, 0, len(items)*4)
		for i, it := range items {
			if i > 0 {
				q += ","
			}
			q += "(?,?,?,?)"
			args = append(args, orderID, it.ProductID, it.Quantity, it.Price)
		}
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.GetByID(ctx, uint64(orderID))
}

// GetByID loads one order with its owner summary, items and product
// detail. Returns ErrOrderNotFound when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	const q = `SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
	           FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = ?`
	var (
		o     model.Order
		owner model.UserSummary
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt,
		&owner.ID, &owner.Name, &owner.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.User = &owner
	items, err := r.itemsForOrders(ctx, []uint64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return &o, nil
}

// ListAll returns every order newest-first, for the admin back-office.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*model.Order, error) {
	return r.list(ctx, `SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
	           FROM orders o JOIN users u ON u.id = o.user_id ORDER BY o.created_at DESC, o.id DESC`)
}

// ListByUser returns the orders owned by one user, newest-first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Order, error) {
	return r.list(ctx, `SELECT o.id, o.user_id, o.total, o.status, o.created_at, u.id, u.name, u.email
	           FROM orders o JOIN users u ON u.id = o.user_id WHERE o.user_id = ? ORDER BY o.created_at DESC, o.id DESC`,
		userID)
}

func (r *OrderRepo) list(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Order{}
	ids := []uint64{}
	for rows.Next() {
		o := new(model.Order)
		owner := new(model.UserSummary)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt,
			&owner.ID, &owner.Name, &owner.Email); err != nil {
			return nil, err
		}
		o.User = owner
		o.Items = []model.OrderItem{}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range out {
		if its, ok := items[o.ID]; ok {
			o.Items = its
		}
	}
	return out, nil
}

// itemsForOrders loads the items of the given orders in one query. The
// product join is a LEFT JOIN: a deleted product leaves the item intact
// with its snapshot price and a nil product.
func (r *OrderRepo) itemsForOrders(ctx context.Context, orderIDs []uint64) (map[uint64][]model.OrderItem, error) {
	q := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
	      p.id, p.name, p.description, p.price, p.image_url, p.category_id, p.expiry_date
	      FROM order_items oi LEFT JOIN products p ON p.id = oi.product_id
	      WHERE oi.order_id IN (` + placeholders(len(orderIDs)) + `) ORDER BY oi.id`
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := map[uint64][]model.OrderItem{}
	for rows.Next() {
		var (
			it     model.OrderItem
			pID    sql.NullInt64
			pName  sql.NullString
			pDesc  sql.NullString
			pPrice sql.NullFloat64
			pImg   sql.NullString
			pCat   sql.NullInt64
			pExp   sql.NullTime
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&pID, &pName, &pDesc, &pPrice, &pImg, &pCat, &pExp); err != nil {
			return nil, err
		}
		if pID.Valid {
			p := &model.Product{
				ID:          uint64(pID.Int64),
				Name:        pName.String,
				Description: pDesc.String,
				Price:       pPrice.Float64,
				CategoryID:  uint64(pCat.Int64),
			}
			if pImg.Valid && pImg.String != "" {
				im := model.ParseImage(pImg.String)
				p.Image = &im
			}
			if pExp.Valid {
				t := pExp.Time
				p.ExpiryDate = &t
			}
			it.Product = p
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return byOrder, nil
}

// UpdateStatus sets the status of an order and returns the refreshed
// record. Status validity is the handler's concern; here an unknown id
// yields ErrOrderNotFound.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Order, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the order is missing or the status is unchanged; tell
		// them apart with a lookup so the caller gets a proper 404.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
