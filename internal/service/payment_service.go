package service

import (
	"context"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService — только чтение для админки; платежи создаются и
// закрываются внутри заказных транзакций.
type PaymentService struct {
	payments repository.PaymentRepo
}

func NewPaymentService(payments repository.PaymentRepo) *PaymentService {
	return &PaymentService{payments: payments}
}

func (s *PaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.ListAll(ctx)
}

func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// TotalRevenue — сумма по платежам в статусе PAID.
func (s *PaymentService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.payments.TotalRevenue(ctx)
}
