// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios without string matching: a
// duplicate key becomes an HTTP 409, a missing entity an HTTP 404, and
// everything else a 500.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateName is returned when a unique name constraint is violated,
// e.g. creating a category that already exists.
var ErrDuplicateName = errors.New("name already exists")

// ErrCategoryNotFound is returned when a category lookup finds no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrProductNotFound is returned when a product lookup finds no row.
var ErrProductNotFound = errors.New("product not found")

// ErrOrderNotFound is returned when an order lookup finds no row.
var ErrOrderNotFound = errors.New("order not found")

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
// (error 1062). The driver has no exported sentinel for it, so the code is
// matched in the message the same way across all repositories.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
