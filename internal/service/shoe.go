package service

import (
	"context"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShoeInput struct {
	Name        string
	Brand       string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	IsActive    bool
}

type ShoePatch struct {
	Name        *string
	Brand       *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	IsActive    *bool
}

// ShoeView — карточка каталога с доступными размерами (size asc).
type ShoeView struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Brand       string                 `json:"brand"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	ImageURL    string                 `json:"imageUrl"`
	Sizes       []repository.SizeStock `json:"sizes"`
}

type ShoeService interface {
	ListShoes(ctx context.Context, f repository.CatalogFilter) ([]ShoeView, error)
	GetShoe(ctx context.Context, id uuid.UUID) (*ShoeView, error)

	ListShoesAdmin(ctx context.Context) ([]models.Shoe, error)
	GetShoeAdmin(ctx context.Context, id uuid.UUID) (*models.Shoe, error)
	CreateShoe(ctx context.Context, in ShoeInput) (*models.Shoe, error)
	UpdateShoe(ctx context.Context, id uuid.UUID, patch ShoePatch) (*models.Shoe, error)
	DeleteShoe(ctx context.Context, id uuid.UUID) error
	UpsertSize(ctx context.Context, shoeID uuid.UUID, size, stockCount int) error
	DeleteSize(ctx context.Context, shoeID uuid.UUID, size int) error
	ShoeCount(ctx context.Context) (int64, error)
}
