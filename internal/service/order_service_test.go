package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zemenu6/dbrand-backend/internal/migrate"
	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"
	"github.com/zemenu6/dbrand-backend/internal/service"
	"github.com/zemenu6/dbrand-backend/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

func seedUser(t *testing.T, repos *repository.Repository, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "test user",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Enabled:      true,
	}
	if err := repos.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedShoe(t *testing.T, repos *repository.Repository, name, price string, size, stock int) *models.Shoe {
	t.Helper()
	ctx := context.Background()
	s := &models.Shoe{
		Name:     name,
		Brand:    "Nike",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	if err := repos.Shoes.Create(ctx, s); err != nil {
		t.Fatalf("seed shoe: %v", err)
	}
	if err := repos.Shoes.UpsertSize(ctx, s.ID, size, stock); err != nil {
		t.Fatalf("seed size: %v", err)
	}
	return s
}

func userCtx(u *models.User) context.Context {
	return service.WithPrincipal(context.Background(), service.Principal{UserID: u.ID, Role: u.Role})
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestOrderService_CreateOrder_RepeatedShoeAndSize(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	// Одна и та же модель и размер в двух строках — валидный заказ.
	view, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items: []service.OrderLineRequest{
			{ShoeID: shoe.ID, Size: 42, Quantity: 2},
			{ShoeID: shoe.ID, Size: 42, Quantity: 1},
		},
		DeliveryDays: 5,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !view.TotalPrice.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("total mismatch: %s", view.TotalPrice)
	}
	if len(view.Items) != 2 {
		t.Fatalf("both lines must survive: %+v", view.Items)
	}
	if n := countRows(t, repos.DB, &models.OrderItem{}); n != 2 {
		t.Fatalf("order_items rows: %d", n)
	}
}

func TestOrderService_CreateOrder_TotalAndPendingPayment(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	shoeA := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)
	shoeB := seedShoe(t, repos, "Gel-Kayano", "30.00", 41, 2)

	ctx := userCtx(user)
	view, err := svc.CreateOrder(ctx, service.CreateOrderInput{
		Items: []service.OrderLineRequest{
			{ShoeID: shoeA.ID, Size: 42, Quantity: 2},
			{ShoeID: shoeB.ID, Size: 41, Quantity: 1},
		},
		DeliveryDays: 5,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if !view.TotalPrice.Equal(decimal.RequireFromString("130.00")) {
		t.Fatalf("total mismatch: %s", view.TotalPrice)
	}
	if view.Status != string(models.OrderStatusProcessing) {
		t.Fatalf("new order must be PROCESSING, got %s", view.Status)
	}
	if !strings.HasPrefix(view.OrderNumber, "ORD-") {
		t.Fatalf("order number format: %q", view.OrderNumber)
	}
	if want := view.OrderDate.AddDate(0, 0, 5); !view.DeliveryDate.Equal(want) {
		t.Fatalf("delivery date mismatch: %s != %s", view.DeliveryDate, want)
	}
	if len(view.Items) != 2 {
		t.Fatalf("items: %+v", view.Items)
	}
	if !view.Items[0].Subtotal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("subtotal mismatch: %s", view.Items[0].Subtotal)
	}

	payment, err := repos.Payments.GetByOrderID(context.Background(), view.ID)
	if err != nil || payment == nil {
		t.Fatalf("payment not created: %v %v", payment, err)
	}
	if payment.Status != models.PaymentStatusPending {
		t.Fatalf("payment must be PENDING, got %s", payment.Status)
	}
	if !payment.Amount.Equal(view.TotalPrice) {
		t.Fatalf("payment amount %s != order total %s", payment.Amount, view.TotalPrice)
	}

	// По умолчанию остатки не списываются.
	ss, err := repos.Shoes.SizeFor(context.Background(), shoeA.ID, 42)
	if err != nil || ss == nil {
		t.Fatalf("SizeFor: %v %v", ss, err)
	}
	if ss.StockCount != 5 {
		t.Fatalf("stock must stay at 5, got %d", ss.StockCount)
	}
}

func TestOrderService_CreateOrder_UnknownShoe_NothingPersisted(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	_, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items: []service.OrderLineRequest{
			{ShoeID: shoe.ID, Size: 42, Quantity: 1},
			{ShoeID: uuid.New(), Size: 42, Quantity: 1},
		},
	})
	if !errors.Is(err, service.ErrShoeNotFound) {
		t.Fatalf("want ErrShoeNotFound, got %v", err)
	}

	if n := countRows(t, repos.DB, &models.Order{}); n != 0 {
		t.Fatalf("orders leaked: %d", n)
	}
	if n := countRows(t, repos.DB, &models.Payment{}); n != 0 {
		t.Fatalf("payments leaked: %d", n)
	}
}

func TestOrderService_CreateOrder_InsufficientStock_RollsBack(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	shoeA := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)
	shoeB := seedShoe(t, repos, "Gel-Kayano", "30.00", 41, 2)

	_, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items: []service.OrderLineRequest{
			{ShoeID: shoeA.ID, Size: 42, Quantity: 1},
			{ShoeID: shoeB.ID, Size: 41, Quantity: 3}, // на складе только 2
		},
	})
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	if n := countRows(t, repos.DB, &models.Order{}); n != 0 {
		t.Fatalf("orders leaked: %d", n)
	}
	if n := countRows(t, repos.DB, &models.OrderItem{}); n != 0 {
		t.Fatalf("order items leaked: %d", n)
	}
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)
	user := seedUser(t, repos, models.RoleUser)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	if _, err := svc.CreateOrder(context.Background(), service.CreateOrderInput{
		Items: []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 1}},
	}); !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("no principal: want ErrUnauthorized, got %v", err)
	}

	ctx := userCtx(user)
	if _, err := svc.CreateOrder(ctx, service.CreateOrderInput{}); !errors.Is(err, service.ErrEmptyItems) {
		t.Fatalf("empty items: want ErrEmptyItems, got %v", err)
	}
	if _, err := svc.CreateOrder(ctx, service.CreateOrderInput{
		Items: []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 0}},
	}); !errors.Is(err, service.ErrQuantityInvalid) {
		t.Fatalf("zero quantity: want ErrQuantityInvalid, got %v", err)
	}
}

func TestOrderService_CreateOrder_DecrementEnabled(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, true)

	user := seedUser(t, repos, models.RoleUser)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	if _, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items: []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 2}},
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	ss, err := repos.Shoes.SizeFor(context.Background(), shoe.ID, 42)
	if err != nil || ss == nil {
		t.Fatalf("SizeFor: %v %v", ss, err)
	}
	if ss.StockCount != 3 {
		t.Fatalf("stock must drop to 3, got %d", ss.StockCount)
	}
}

func TestOrderService_UpdateStatus_ShippedSettlesPayment(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	admin := seedUser(t, repos, models.RoleAdmin)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	view, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items:        []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 1}},
		DeliveryDays: 3,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(userCtx(admin), view.ID, service.UpdateOrderStatusInput{
		Status:       string(models.OrderStatusShipped),
		DeliveryDays: 7,
	})
	if err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if updated.Status != string(models.OrderStatusShipped) {
		t.Fatalf("status: %s", updated.Status)
	}
	if want := view.OrderDate.AddDate(0, 0, 7); !updated.DeliveryDate.Equal(want) {
		t.Fatalf("delivery date must be recomputed from order date: %s != %s", updated.DeliveryDate, want)
	}

	payment, err := repos.Payments.GetByOrderID(context.Background(), view.ID)
	if err != nil || payment == nil {
		t.Fatalf("payment: %v %v", payment, err)
	}
	if payment.Status != models.PaymentStatusPaid {
		t.Fatalf("payment must be PAID after SHIPPED, got %s", payment.Status)
	}
	if payment.PaymentDate == nil {
		t.Fatal("payment date must be set")
	}
	if payment.TransactionReference == nil || !strings.HasPrefix(*payment.TransactionReference, "AUTO_") {
		t.Fatalf("transaction reference: %v", payment.TransactionReference)
	}
}

func TestOrderService_UpdateStatus_ProcessingKeepsPaymentPending(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	user := seedUser(t, repos, models.RoleUser)
	admin := seedUser(t, repos, models.RoleAdmin)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	view, err := svc.CreateOrder(userCtx(user), service.CreateOrderInput{
		Items: []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(userCtx(admin), view.ID, service.UpdateOrderStatusInput{
		Status: string(models.OrderStatusCancelled),
	}); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	payment, _ := repos.Payments.GetByOrderID(context.Background(), view.ID)
	if payment.Status != models.PaymentStatusPending {
		t.Fatalf("payment must stay PENDING, got %s", payment.Status)
	}
}

func TestOrderService_UpdateStatus_Errors(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)
	admin := seedUser(t, repos, models.RoleAdmin)

	ctx := userCtx(admin)
	if _, err := svc.UpdateOrderStatus(ctx, uuid.New(), service.UpdateOrderStatusInput{
		Status: "PAUSED",
	}); !errors.Is(err, service.ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(ctx, uuid.New(), service.UpdateOrderStatusInput{
		Status: string(models.OrderStatusShipped),
	}); !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	repos := setupRepos(t)
	svc := service.NewOrderService(repos, nil, false)

	owner := seedUser(t, repos, models.RoleUser)
	other := seedUser(t, repos, models.RoleUser)
	admin := seedUser(t, repos, models.RoleAdmin)
	shoe := seedShoe(t, repos, "Air Max 90", "50.00", 42, 5)

	view, err := svc.CreateOrder(userCtx(owner), service.CreateOrderInput{
		Items: []service.OrderLineRequest{{ShoeID: shoe.ID, Size: 42, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := svc.GetOrder(userCtx(owner), view.ID); err != nil {
		t.Fatalf("owner must see the order: %v", err)
	}
	if _, err := svc.GetOrder(userCtx(other), view.ID); !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("foreign order must look absent, got %v", err)
	}
	if _, err := svc.GetOrder(userCtx(admin), view.ID); err != nil {
		t.Fatalf("admin must see any order: %v", err)
	}
}
