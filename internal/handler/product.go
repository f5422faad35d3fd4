package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/confetti-shop/backend/internal/model"
	"github.com/confetti-shop/backend/internal/repository"
)

// ProductHandler serves product catalog routes. Reads are public, writes
// are registered behind the admin role middleware.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(products *repository.ProductRepo) *ProductHandler {
	if products == nil {
		panic("nil repository passed to NewProductHandler")
	}
	return &ProductHandler{Products: products}
}

// productReq is the write payload for create and update. Price and
// categoryId tolerate string values, see floatField/intField. The image
// URL may carry the legacy '@' external marker; it is decoded into the
// typed image field before storage.
type productReq struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       floatField `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	CategoryID  intField   `json:"categoryId"`
	ExpiryDate  string     `json:"expiryDate"`
}

// toModel validates and converts the payload. Returned errors are user
// messages, safe to echo back with a 400.
func (req productReq) toModel() (model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Product{}, errors.New("name is required")
	}
	if req.Price < 0 {
		return model.Product{}, errors.New("price must not be negative")
	}
	if req.CategoryID == 0 {
		return model.Product{}, errors.New("categoryId is required")
	}
	p := model.Product{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       float64(req.Price),
		CategoryID:  uint64(req.CategoryID),
	}
	if raw := strings.TrimSpace(req.ImageURL); raw != "" {
		im := model.ParseImage(raw)
		p.Image = &im
	}
	if raw := strings.TrimSpace(req.ExpiryDate); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return model.Product{}, errors.New("invalid expiryDate")
		}
		p.ExpiryDate = &t
	}
	return p, nil
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

// List handles GET /api/products with an optional ?category=ID filter.
func (h *ProductHandler) List(c echo.Context) error {
	var categoryID *uint64
	if raw := c.QueryParam("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category filter"})
		}
		categoryID = &id
	}
	items, err := h.Products.List(c.Request().Context(), categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/products (admin only).
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	created, err := h.Products.Create(c.Request().Context(), p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/products/:id (admin only). Every editable field
// is overwritten, PUT semantics.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	updated, err := h.Products.Update(c.Request().Context(), id, p)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/products/:id (admin only).
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}
