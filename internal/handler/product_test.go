package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confetti-shop/backend/internal/repository"
)

var productSelectPat = regexp.QuoteMeta("FROM products p JOIN categories c ON c.id = p.category_id")

func productCols() []string {
	return []string{"id", "name", "description", "price", "image_url",
		"category_id", "expiry_date", "c_id", "c_name"}
}

func TestGetProductNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	mock.ExpectQuery(productSelectPat).WithArgs(42).
		WillReturnRows(sqlmock.NewRows(productCols()))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProductsCategoryFilter(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	mock.ExpectQuery(productSelectPat).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(1, "Трюфель", "ручная работа", 120.0, "@https://cdn.example.com/t.png", 3, nil, 3, "Шоколад"))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products?category=3", "")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var items []struct {
		Name     string `json:"name"`
		Image    *struct {
			URL        string `json:"url"`
			IsExternal bool   `json:"isExternal"`
		} `json:"imageUrl"`
		Category *struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Трюфель", items[0].Name)
	// The '@' marker is decoded, never served raw.
	require.NotNil(t, items[0].Image)
	assert.Equal(t, "https://cdn.example.com/t.png", items[0].Image.URL)
	assert.True(t, items[0].Image.IsExternal)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Шоколад", items[0].Category.Name)
}

func TestListProductsBadCategoryFilter(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	c, rec := newJSONContext(t, http.MethodGet, "/api/products?category=candy", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Admin forms submit price and categoryId as strings; both spellings must
// be accepted and coerced.
func TestCreateProductCoercesStringNumbers(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	mock.ExpectExec("INSERT INTO products").
		WithArgs("Зефир", "нежный", 99.9, nil, 3, nil).
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.ExpectQuery(productSelectPat).WithArgs(8).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(8, "Зефир", "нежный", 99.9, nil, 3, nil, 3, "Пастила"))

	c, rec := newJSONContext(t, http.MethodPost, "/api/products",
		`{"name":"Зефир","description":"нежный","price":"99.90","categoryId":"3"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductValidation(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	for name, body := range map[string]string{
		"missing name":     `{"price":10,"categoryId":1}`,
		"negative price":   `{"name":"x","price":-1,"categoryId":1}`,
		"missing category": `{"name":"x","price":10}`,
		"bad expiry":       `{"name":"x","price":10,"categoryId":1,"expiryDate":"tomorrow"}`,
	} {
		c, rec := newJSONContext(t, http.MethodPost, "/api/products", body)
		require.NoError(t, h.Create(c), name)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	// The existence check comes first and finds nothing.
	mock.ExpectQuery(productSelectPat).WithArgs(42).
		WillReturnRows(sqlmock.NewRows(productCols()))

	c, rec := newJSONContext(t, http.MethodPut, "/api/products/42",
		`{"name":"x","price":10,"categoryId":1}`)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	mock.ExpectExec("DELETE FROM products").WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newJSONContext(t, http.MethodDelete, "/api/products/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Deleting a missing product is a 404.
	mock.ExpectExec("DELETE FROM products").WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	c, rec = newJSONContext(t, http.MethodDelete, "/api/products/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductExpiryDateParsing(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewProductHandler(repository.NewProductRepo(db))

	wantDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO products").
		WithArgs("Торт", nil, 500.0, nil, 2, wantDate).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery(productSelectPat).WithArgs(9).
		WillReturnRows(sqlmock.NewRows(productCols()).
			AddRow(9, "Торт", nil, 500.0, nil, 2, wantDate, 2, "Торты"))

	c, rec := newJSONContext(t, http.MethodPost, "/api/products",
		`{"name":"Торт","price":500,"categoryId":2,"expiryDate":"2025-12-31"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "2025-12-31")
	require.NoError(t, mock.ExpectationsWereMet())
}
