package handlers

import (
	"net/http"

	"github.com/zemenu6/dbrand-backend/internal/dto"
	"github.com/zemenu6/dbrand-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Create godoc
// @Summary Оформить заказ
// @Description Проверяет наличие по каждой позиции, считает сумму и создаёт заказ с платежом PENDING
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body dto.CreateOrderRequest true "Позиции заказа"
// @Success 200 {object} service.OrderView
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	in := service.CreateOrderInput{DeliveryDays: req.DeliveryDays}
	for _, it := range req.Items {
		shoeID, err := uuid.Parse(it.ShoeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
			return
		}
		in.Items = append(in.Items, service.OrderLineRequest{
			ShoeID:   shoeID,
			Size:     it.Size,
			Quantity: it.Quantity,
		})
	}

	view, err := h.orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// My godoc
// @Summary Мои заказы
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OrderView
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/orders/my [get]
func (h *OrderHandler) My(c *gin.Context) {
	list, err := h.orders.ListMyOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Заказ по ID
// @Description Владелец видит свой заказ, админ — любой
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} service.OrderView
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}
	view, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListAll godoc
// @Summary Все заказы (admin)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OrderView
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	list, err := h.orders.ListAllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateStatus godoc
// @Summary Сменить статус заказа (admin)
// @Description При переходе в SHIPPED или DELIVERED платёж автоматически помечается PAID
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} service.OrderView
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid order id", nil))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	view, err := h.orders.UpdateOrderStatus(c.Request.Context(), id, service.UpdateOrderStatusInput{
		Status:       req.Status,
		DeliveryDays: req.DeliveryDays,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
