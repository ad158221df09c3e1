package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderLineRequest struct {
	ShoeID   uuid.UUID
	Size     int
	Quantity int
}

type CreateOrderInput struct {
	Items        []OrderLineRequest
	DeliveryDays int
}

type UpdateOrderStatusInput struct {
	Status       string
	DeliveryDays int
}

// OrderItemView — позиция заказа, обогащённая карточкой обуви для отображения.
type OrderItemView struct {
	ShoeID    uuid.UUID       `json:"shoeId"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	ImageURL  string          `json:"imageUrl"`
	Size      int             `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderView struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	OrderNumber  string          `json:"orderNumber"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
	DeliveryDate time.Time       `json:"deliveryDate"`
	DeliveryDays int             `json:"deliveryDays"`
	Items        []OrderItemView `json:"items"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderView, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListMyOrders(ctx context.Context) ([]OrderView, error)
	ListAllOrders(ctx context.Context) ([]OrderView, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, in UpdateOrderStatusInput) (*OrderView, error)
	OrderCount(ctx context.Context) (int64, error)
}
