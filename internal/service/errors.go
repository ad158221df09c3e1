package service

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrShoeNotFound       = errors.New("shoe not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrEmptyItems         = errors.New("empty items")
	ErrQuantityInvalid    = errors.New("quantity must be > 0")
	ErrSizeInvalid        = errors.New("size must be > 0")
	ErrDeliveryInvalid    = errors.New("delivery days must be >= 0")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidStatus      = errors.New("unknown order status")
	ErrInvalidRole        = errors.New("unknown role")
)
