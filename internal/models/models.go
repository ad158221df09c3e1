package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;not null" json:"email"` // уникальность через индекс lower(email)
	Phone        string    `gorm:"type:text" json:"phone"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:'USER';index" json:"role"`
	Enabled      bool      `gorm:"not null;default:true" json:"enabled"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Деньги — numeric(10,2), считаем только через decimal (без float).
type Shoe struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	Brand       string          `gorm:"type:text;not null;index" json:"brand"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text" json:"imageUrl"`
	IsActive    bool            `gorm:"not null;default:true;index" json:"isActive"`
	IsDeleted   bool            `gorm:"not null;default:false;index" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Sizes []ShoeSize `gorm:"foreignKey:ShoeID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
}

func (Shoe) TableName() string { return "shoes" }

type ShoeSize struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShoeID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_shoe_sizes_shoe_size" json:"shoeId"`
	Size       int       `gorm:"type:int;not null;uniqueIndex:ux_shoe_sizes_shoe_size" json:"size"`
	StockCount int       `gorm:"type:int;not null;default:0" json:"stockCount"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (ShoeSize) TableName() string { return "shoe_sizes" }

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	OrderNumber string          `gorm:"type:text;not null;uniqueIndex" json:"orderNumber"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalPrice"`
	Status      OrderStatus     `gorm:"type:text;not null;default:'PROCESSING';index" json:"status"`

	OrderDate    time.Time `gorm:"not null;default:now();index" json:"orderDate"`
	DeliveryDate time.Time `gorm:"not null" json:"deliveryDate"`
	DeliveryDays int       `gorm:"type:int;not null;default:0" json:"deliveryDays"`

	TrackingNumber *string `gorm:"type:text" json:"trackingNumber,omitempty"`
	Notes          *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// UnitPrice — снимок цены на момент заказа, больше не пересчитывается.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"orderId"`
	ShoeID    uuid.UUID       `gorm:"type:uuid;not null" json:"shoeId"`
	Size      int             `gorm:"type:int;not null" json:"size"`
	Quantity  int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unitPrice"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (OrderItem) TableName() string { return "order_items" }

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID      uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex" json:"orderId"` // ровно один платёж на заказ
	Status  PaymentStatus `gorm:"type:text;not null;default:'PENDING';index" json:"status"`

	Amount               decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	TransactionReference *string         `gorm:"type:text" json:"transactionReference,omitempty"`
	PaymentMethod        *string         `gorm:"type:text" json:"paymentMethod,omitempty"`
	PaymentDate          *time.Time      `json:"paymentDate,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }
