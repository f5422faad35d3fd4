package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/confetti-shop/backend/internal/repository"
	"github.com/confetti-shop/backend/internal/service"
)

// ExpiryHandler serves the expiry-tracking routes. The statistics endpoint
// is public (the storefront shows freshness badges); the expired and
// expiring-soon listings plus the full report are registered admin-only.
type ExpiryHandler struct {
	Products *repository.ProductRepo
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewExpiryHandler(products *repository.ProductRepo) *ExpiryHandler {
	if products == nil {
		panic("nil repository passed to NewExpiryHandler")
	}
	return &ExpiryHandler{Products: products, Now: time.Now}
}

// Expired handles GET /api/products/expired (admin only).
func (h *ExpiryHandler) Expired(c echo.Context) error {
	items, err := h.Products.ListExpired(c.Request().Context(), h.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// ExpiringSoon handles GET /api/products/expiring-soon?days=N (admin
// only). N defaults to 7 and must be positive.
func (h *ExpiryHandler) ExpiringSoon(c echo.Context) error {
	days := 7
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid days parameter"})
		}
		days = n
	}
	now := h.Now().UTC()
	items, err := h.Products.ListExpiringSoon(c.Request().Context(), now, now.AddDate(0, 0, days))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Statistics handles GET /api/products/expiry-statistics (public).
func (h *ExpiryHandler) Statistics(c echo.Context) error {
	stats, err := h.Products.ExpiryStatistics(c.Request().Context(), h.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// Report handles GET /api/products/expiry-report (admin only). The
// aggregation itself performs no authorization; the route does.
func (h *ExpiryHandler) Report(c echo.Context) error {
	ctx := c.Request().Context()
	now := h.Now().UTC()

	stats, err := h.Products.ExpiryStatistics(ctx, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build report"})
	}
	expired, err := h.Products.ListExpired(ctx, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build report"})
	}
	expiring, err := h.Products.ListExpiringSoon(ctx, now, now.AddDate(0, 0, 7))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build report"})
	}

	return c.JSON(http.StatusOK, service.BuildExpiryReport(now, stats, expired, expiring))
}
