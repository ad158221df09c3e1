package dto

import "github.com/shopspring/decimal"

type CreateShoeRequest struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    *bool           `json:"isActive"`
}

type UpdateShoeRequest struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	IsActive    *bool            `json:"isActive"`
}

type UpsertSizeRequest struct {
	Size       int `json:"size" binding:"required,gt=0"`
	StockCount int `json:"stockCount" binding:"gte=0"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type RevenueResponse struct {
	Total decimal.Decimal `json:"total"`
}
