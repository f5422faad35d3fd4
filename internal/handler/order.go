package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/confetti-shop/backend/internal/config"
	"github.com/confetti-shop/backend/internal/model"
	"github.com/confetti-shop/backend/internal/repository"
)

// OrderHandler serves order placement, listing and status updates. All
// routes require authentication; status updates additionally require the
// admin role, enforced by middleware at registration.
type OrderHandler struct {
	Cfg    config.Config
	Orders *repository.OrderRepo
}

func NewOrderHandler(cfg config.Config, orders *repository.OrderRepo) *OrderHandler {
	if orders == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Cfg: cfg, Orders: orders}
}

type orderItemReq struct {
	ProductID uint64     `json:"productId"`
	Quantity  uint32     `json:"quantity"`
	Price     floatField `json:"price"`
}

type createOrderReq struct {
	OrderItems []orderItemReq `json:"orderItems"`
	Total      floatField     `json:"total"`
}

// Create handles POST /api/orders. The submitted total and per-item prices
// are stored as given — the item price is the snapshot that keeps order
// history stable. With StrictOrders enabled the handler additionally
// rejects empty carts and totals that disagree with the item sum.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	items := make([]model.OrderItem, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		if it.ProductID == 0 || it.Quantity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each item needs productId and a positive quantity"})
		}
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     float64(it.Price),
		})
	}

	if h.Cfg.StrictOrders {
		if len(items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order has no items"})
		}
		var sum float64
		for _, it := range items {
			sum += it.Price * float64(it.Quantity)
		}
		if math.Abs(sum-float64(req.Total)) > 1e-9 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "total does not match item prices"})
		}
	}

	order, err := h.Orders.Create(c.Request().Context(), userID, float64(req.Total), items)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
	}
	return c.JSON(http.StatusCreated, order)
}

// List handles GET /api/orders: all orders for admins, own orders for
// everyone else, newest first. The read runs under a time budget; when it
// is exceeded the client gets a timeout message suggesting a retry instead
// of a generic server error.
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	budget := time.Duration(h.Cfg.OrderListBudget) * time.Second
	if budget <= 0 {
		budget = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), budget)
	defer cancel()

	var orders []*model.Order
	if role == model.RoleAdmin {
		orders, err = h.Orders.ListAll(ctx)
	} else {
		orders, err = h.Orders.ListByUser(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "timed out fetching orders, please try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, orders)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /api/orders/:id/status (admin only). Any of
// the five statuses may be set at any time; there is no transition graph.
// An unknown status is rejected before the database is touched, so the
// stored value never changes on a bad request.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order status"})
	}

	order, err := h.Orders.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, order)
}
