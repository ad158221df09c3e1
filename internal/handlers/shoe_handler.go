package handlers

import (
	"net/http"
	"strconv"

	"github.com/zemenu6/dbrand-backend/internal/dto"
	"github.com/zemenu6/dbrand-backend/internal/repository"
	"github.com/zemenu6/dbrand-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ShoeHandler struct {
	shoes service.ShoeService
	log   *zap.Logger
}

func NewShoeHandler(shoes service.ShoeService, log *zap.Logger) *ShoeHandler {
	return &ShoeHandler{shoes: shoes, log: log}
}

func parseIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func parseDecimalQuery(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// List godoc
// @Summary Каталог обуви
// @Description Активные товары с доступными размерами; фильтры по бренду, размеру и цене
// @Tags shoes
// @Produce json
// @Param brand query string false "Бренд (без учёта регистра)"
// @Param minSize query int false "Минимальный размер"
// @Param maxSize query int false "Максимальный размер"
// @Param minPrice query string false "Минимальная цена"
// @Param maxPrice query string false "Максимальная цена"
// @Success 200 {array} service.ShoeView
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/shoes [get]
func (h *ShoeHandler) List(c *gin.Context) {
	f := repository.CatalogFilter{Brand: c.Query("brand")}

	var ok bool
	if f.MinSize, ok = parseIntQuery(c, "minSize"); !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid minSize", nil))
		return
	}
	if f.MaxSize, ok = parseIntQuery(c, "maxSize"); !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid maxSize", nil))
		return
	}
	if f.MinPrice, ok = parseDecimalQuery(c, "minPrice"); !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid minPrice", nil))
		return
	}
	if f.MaxPrice, ok = parseDecimalQuery(c, "maxPrice"); !ok {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid maxPrice", nil))
		return
	}

	list, err := h.shoes.ListShoes(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Карточка обуви
// @Tags shoes
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} service.ShoeView
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/shoes/{id} [get]
func (h *ShoeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	view, err := h.shoes.GetShoe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListAdmin godoc
// @Summary Все товары, включая неактивные (admin)
// @Tags shoes
// @Produce json
// @Success 200 {array} models.Shoe
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/admin/shoes [get]
func (h *ShoeHandler) ListAdmin(c *gin.Context) {
	list, err := h.shoes.ListShoesAdmin(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAdmin godoc
// @Summary Товар со всеми размерами (admin)
// @Tags shoes
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} models.Shoe
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/admin/shoes/{id} [get]
func (h *ShoeHandler) GetAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	shoe, err := h.shoes.GetShoeAdmin(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, shoe)
}

// Create godoc
// @Summary Создать товар (admin)
// @Tags shoes
// @Accept json
// @Produce json
// @Param shoe body dto.CreateShoeRequest true "Данные товара"
// @Success 200 {object} models.Shoe
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Router /api/shoes [post]
func (h *ShoeHandler) Create(c *gin.Context) {
	var req dto.CreateShoeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	shoe, err := h.shoes.CreateShoe(c.Request.Context(), service.ShoeInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    isActive,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, shoe)
}

// Update godoc
// @Summary Обновить товар (admin)
// @Tags shoes
// @Accept json
// @Produce json
// @Param id path string true "ID товара"
// @Param shoe body dto.UpdateShoeRequest true "Изменяемые поля"
// @Success 200 {object} models.Shoe
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/shoes/{id} [put]
func (h *ShoeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	var req dto.UpdateShoeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}

	shoe, err := h.shoes.UpdateShoe(c.Request.Context(), id, service.ShoePatch{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, shoe)
}

// Delete godoc
// @Summary Удалить товар (admin, soft delete)
// @Tags shoes
// @Param id path string true "ID товара"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/shoes/{id} [delete]
func (h *ShoeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	if err := h.shoes.DeleteShoe(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpsertSize godoc
// @Summary Задать остаток по размеру (admin)
// @Tags shoes
// @Accept json
// @Param id path string true "ID товара"
// @Param size body dto.UpsertSizeRequest true "Размер и остаток"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/shoes/{id}/sizes [put]
func (h *ShoeHandler) UpsertSize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	var req dto.UpsertSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	if err := h.shoes.UpsertSize(c.Request.Context(), id, req.Size, req.StockCount); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSize godoc
// @Summary Удалить размер (admin)
// @Tags shoes
// @Param id path string true "ID товара"
// @Param size path int true "Размер"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/shoes/{id}/sizes/{size} [delete]
func (h *ShoeHandler) DeleteSize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid shoe id", nil))
		return
	}
	size, err := strconv.Atoi(c.Param("size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid size", nil))
		return
	}
	if err := h.shoes.DeleteSize(c.Request.Context(), id, size); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
