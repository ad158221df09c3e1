package dto

type OrderItemRequest struct {
	ShoeID   string `json:"shoeId" binding:"required,uuid"`
	Size     int    `json:"size" binding:"required,gt=0"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryDays int                `json:"deliveryDays" binding:"gte=0"`
}

type UpdateOrderStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	DeliveryDays int    `json:"deliveryDays" binding:"gte=0"`
}

type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Role    *string `json:"role"`
	Enabled *bool   `json:"enabled"`
}
