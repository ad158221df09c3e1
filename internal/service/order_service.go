package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/nanorand/nanorand"
	"github.com/shopspring/decimal"
)

type orderService struct {
	repo           *repository.Repository
	events         EventBus
	decrementStock bool
	now            func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus, decrementStock bool) OrderService {
	return &orderService{
		repo:           repo,
		events:         events,
		decrementStock: decrementStock,
		now:            time.Now,
	}
}

func newOrderNumber() (string, error) {
	code, err := nanorand.Gen(10)
	if err != nil {
		return "", err
	}
	return "ORD-" + code, nil
}

// CreateOrder проверяет все позиции до единой записи и сохраняет заказ,
// позиции и PENDING-платёж одной транзакцией. Цена позиции фиксируется
// на момент оформления.
func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderView, error) {
	p, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if in.DeliveryDays < 0 {
		return nil, ErrDeliveryInvalid
	}

	var (
		order *models.Order
		now   = s.now()
	)

	err = s.repo.WithTx(func(tx *repository.Repository) error {
		var (
			itemsDB []models.OrderItem
			total   = decimal.Zero
		)

		// Валидация строго в порядке запроса, первая ошибка — отказ целиком.
		for _, it := range in.Items {
			if it.Quantity <= 0 {
				return ErrQuantityInvalid
			}
			if it.Size <= 0 {
				return ErrSizeInvalid
			}

			shoe, err := tx.Shoes.GetByID(ctx, it.ShoeID)
			if err != nil {
				return err
			}
			if shoe == nil {
				return fmt.Errorf("%w: %s", ErrShoeNotFound, it.ShoeID)
			}

			ss, err := tx.Shoes.SizeFor(ctx, it.ShoeID, it.Size)
			if err != nil {
				return err
			}
			if ss == nil || ss.StockCount < it.Quantity {
				return fmt.Errorf("%w: shoe %s size %d", ErrInsufficientStock, it.ShoeID, it.Size)
			}

			line := shoe.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(line)

			itemsDB = append(itemsDB, models.OrderItem{
				ShoeID:    it.ShoeID,
				Size:      it.Size,
				Quantity:  it.Quantity,
				UnitPrice: shoe.Price,
				CreatedAt: now,
			})
		}

		// Опциональное списание остатков: условный UPDATE закрывает гонку
		// двух конкурентных заказов на один размер.
		if s.decrementStock {
			for _, it := range in.Items {
				ok, err := tx.Shoes.TryDecrementStock(ctx, it.ShoeID, it.Size, it.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%w: shoe %s size %d", ErrInsufficientStock, it.ShoeID, it.Size)
				}
			}
		}

		number, err := newOrderNumber()
		if err != nil {
			return err
		}

		order = &models.Order{
			UserID:       p.UserID,
			OrderNumber:  number,
			TotalPrice:   total,
			Status:       models.OrderStatusProcessing,
			OrderDate:    now,
			DeliveryDays: in.DeliveryDays,
			DeliveryDate: now.AddDate(0, 0, in.DeliveryDays),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for i := range itemsDB {
			itemsDB[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}

		payment := &models.Payment{
			OrderID:   order.ID,
			Status:    models.PaymentStatusPending,
			Amount:    total,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return err
		}

		ordWith, err := tx.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = ordWith
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{
				ShoeID:    it.ShoeID,
				Size:      it.Size,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		_ = s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Items:       evItems,
			TotalPrice:  order.TotalPrice,
			PlacedAt:    order.OrderDate,
		})
	}

	return s.buildView(ctx, order)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	p, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if p.IsAdmin() {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = s.repo.Orders.GetByIDForUser(ctx, id, p.UserID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return s.buildView(ctx, ord)
}

func (s *orderService) ListMyOrders(ctx context.Context) ([]OrderView, error) {
	p, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Orders.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]OrderView, error) {
	if _, err := requireAuth(ctx); err != nil {
		return nil, err
	}
	orders, err := s.repo.Orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

// UpdateOrderStatus меняет статус и срок доставки; перевод в SHIPPED/DELIVERED
// одновременно закрывает платёж (симуляция расчёта, не шлюз).
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, in UpdateOrderStatusInput) (*OrderView, error) {
	if _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	status := models.OrderStatus(in.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if in.DeliveryDays < 0 {
		return nil, ErrDeliveryInvalid
	}

	var (
		order *models.Order
		now   = s.now()
	)

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		ord, err := tx.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}

		deliveryDate := ord.OrderDate.AddDate(0, 0, in.DeliveryDays)
		if err := tx.Orders.UpdateStatusAndDelivery(ctx, id, status, in.DeliveryDays, deliveryDate); err != nil {
			return err
		}

		if status == models.OrderStatusShipped || status == models.OrderStatusDelivered {
			payment, err := tx.Payments.GetByOrderID(ctx, id)
			if err != nil {
				return err
			}
			if payment != nil {
				ref := fmt.Sprintf("AUTO_%d", now.UnixMilli())
				if err := tx.Payments.UpdateFields(ctx, payment.ID, map[string]any{
					"status":                models.PaymentStatusPaid,
					"payment_date":          now,
					"transaction_reference": ref,
				}); err != nil {
					return err
				}
			}
		}

		order, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Status:    string(order.Status),
			ChangedAt: now,
		})
	}

	return s.buildView(ctx, order)
}

func (s *orderService) OrderCount(ctx context.Context) (int64, error) {
	return s.repo.Orders.Count(ctx)
}

func (s *orderService) buildView(ctx context.Context, ord *models.Order) (*OrderView, error) {
	views, err := s.buildViews(ctx, []models.Order{*ord})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// buildViews обогащает позиции карточками обуви одним запросом на пачку.
func (s *orderService) buildViews(ctx context.Context, orders []models.Order) ([]OrderView, error) {
	ids := make([]uuid.UUID, 0)
	seen := map[uuid.UUID]bool{}
	for _, ord := range orders {
		for _, it := range ord.Items {
			if !seen[it.ShoeID] {
				seen[it.ShoeID] = true
				ids = append(ids, it.ShoeID)
			}
		}
	}

	info, err := s.repo.Shoes.InfoByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]OrderView, 0, len(orders))
	for _, ord := range orders {
		view := OrderView{
			ID:           ord.ID,
			UserID:       ord.UserID,
			OrderNumber:  ord.OrderNumber,
			TotalPrice:   ord.TotalPrice,
			Status:       string(ord.Status),
			OrderDate:    ord.OrderDate,
			DeliveryDate: ord.DeliveryDate,
			DeliveryDays: ord.DeliveryDays,
			Items:        make([]OrderItemView, 0, len(ord.Items)),
		}
		for _, it := range ord.Items {
			shoe := info[it.ShoeID]
			view.Items = append(view.Items, OrderItemView{
				ShoeID:    it.ShoeID,
				Name:      shoe.Name,
				Brand:     shoe.Brand,
				ImageURL:  shoe.PrimaryImageURL,
				Size:      it.Size,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			})
		}
		out = append(out, view)
	}
	return out, nil
}
