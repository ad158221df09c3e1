package handlers

import (
	"net/http"

	"github.com/zemenu6/dbrand-backend/internal/dto"
	"github.com/zemenu6/dbrand-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler — пользователи, платежи и сводные счётчики дашборда.
type AdminHandler struct {
	users    *service.UserService
	payments *service.PaymentService
	shoes    service.ShoeService
	orders   service.OrderService
	log      *zap.Logger
}

func NewAdminHandler(users *service.UserService, payments *service.PaymentService, shoes service.ShoeService, orders service.OrderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, payments: payments, shoes: shoes, orders: orders, log: log}
}

// ListUsers godoc
// @Summary Список пользователей (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	list, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetUser godoc
// @Summary Пользователь по ID (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.User
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid user id", nil))
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Обновить пользователя (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param user body dto.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid user id", nil))
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, service.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		Enabled: req.Enabled,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удалить пользователя (admin)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid user id", nil))
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPayments godoc
// @Summary Список платежей (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payment
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/admin/payments [get]
func (h *AdminHandler) ListPayments(c *gin.Context) {
	list, err := h.payments.ListPayments(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetPayment godoc
// @Summary Платёж по ID (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID платежа"
// @Success 200 {object} models.Payment
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/admin/payments/{id} [get]
func (h *AdminHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid payment id", nil))
		return
	}
	payment, err := h.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// TotalRevenue godoc
// @Summary Сумма оплаченных платежей (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RevenueResponse
// @Router /api/admin/payments/total [get]
func (h *AdminHandler) TotalRevenue(c *gin.Context) {
	total, err := h.payments.TotalRevenue(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.RevenueResponse{Total: total})
}

// UserCount godoc
// @Summary Количество пользователей (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CountResponse
// @Router /api/admin/users/count [get]
func (h *AdminHandler) UserCount(c *gin.Context) {
	n, err := h.users.UserCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// ShoeCount godoc
// @Summary Количество товаров (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CountResponse
// @Router /api/admin/shoes/count [get]
func (h *AdminHandler) ShoeCount(c *gin.Context) {
	n, err := h.shoes.ShoeCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

// OrderCount godoc
// @Summary Количество заказов (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CountResponse
// @Router /api/admin/orders/count [get]
func (h *AdminHandler) OrderCount(c *gin.Context) {
	n, err := h.orders.OrderCount(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
