package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/confetti-shop/backend/internal/utils"
)

// EnsureAdmin creates the bootstrap admin account on first start. If any
// admin already exists nothing is changed; the storefront is unusable
// without at least one back-office account.
func EnsureAdmin(ctx context.Context, db *sql.DB, email, password string, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role='admin'").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,'admin')",
		"Администратор", email, hash); err != nil {
		return err
	}
	log.Printf("admin account created: %s", email)
	return nil
}

// Reset wipes every table in dependency order and reseeds a demo data set:
// the admin account, one category, one product and one pending order.
// Used by cmd/resetdb only; never called from the server.
func Reset(ctx context.Context, db *sql.DB, adminEmail, adminPassword string, bcryptCost int) error {
	for _, table := range []string{"order_items", "orders", "products", "categories", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	hash, err := utils.HashPassword(adminPassword, bcryptCost)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,'admin')",
		"Администратор", adminEmail, hash)
	if err != nil {
		return err
	}
	adminID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", "Шоколадные конфеты")
	if err != nil {
		return err
	}
	catID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, image_url, category_id)
		 VALUES (?,?,?,?,?)`,
		"Трюфель классический", "Шоколадный трюфель ручной работы", 100.0,
		"@https://via.placeholder.com/300x300?text=Трюфель", catID)
	if err != nil {
		return err
	}
	productID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	res, err = db.ExecContext(ctx,
		"INSERT INTO orders (user_id, total, status) VALUES (?,?, 'pending')",
		adminID, 200.0)
	if err != nil {
		return err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?,?,?,?)",
		orderID, productID, 2, 100.0)
	return err
}
