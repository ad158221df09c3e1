package repository

import (
	"context"
	"errors"

	"github.com/zemenu6/dbrand-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogShoe — строка витрины active_shoes (см. миграции).
type CatalogShoe struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	PrimaryImageURL string          `json:"imageUrl"`
}

// SizeStock — строка витрины available_sizes.
type SizeStock struct {
	Size       int `json:"size"`
	StockCount int `json:"stockCount"`
}

type CatalogFilter struct {
	Brand    string
	MinSize  *int
	MaxSize  *int
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type ShoeRepo interface {
	Create(ctx context.Context, s *models.Shoe) error
	GetByID(ctx context.Context, id uuid.UUID) (*CatalogShoe, error)
	GetByIDAdmin(ctx context.Context, id uuid.UUID) (*models.Shoe, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context, f CatalogFilter) ([]CatalogShoe, error)
	ListAdmin(ctx context.Context) ([]models.Shoe, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)

	// InfoByIDs отдаёт карточки обуви без фильтра активности —
	// для отображения исторических заказов.
	InfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]CatalogShoe, error)

	SizesByShoeID(ctx context.Context, shoeID uuid.UUID) ([]SizeStock, error)
	SizeFor(ctx context.Context, shoeID uuid.UUID, size int) (*models.ShoeSize, error)
	UpsertSize(ctx context.Context, shoeID uuid.UUID, size, stockCount int) error
	DeleteSize(ctx context.Context, shoeID uuid.UUID, size int) (bool, error)
	// TryDecrementStock атомарно списывает остаток:
	// if stock_count >= qty then stock_count -= qty
	TryDecrementStock(ctx context.Context, shoeID uuid.UUID, size, qty int) (bool, error)
}

type shoeRepo struct{ db *gorm.DB }

func NewShoeRepo(db *gorm.DB) ShoeRepo { return &shoeRepo{db: db} }

func (r *shoeRepo) Create(ctx context.Context, s *models.Shoe) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shoeRepo) GetByID(ctx context.Context, id uuid.UUID) (*CatalogShoe, error) {
	var row CatalogShoe
	err := r.db.WithContext(ctx).Table("active_shoes").
		Select("id, name, brand, description, price, primary_image_url").
		Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

func (r *shoeRepo) GetByIDAdmin(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	var s models.Shoe
	err := r.db.WithContext(ctx).Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("size ASC")
	}).First(&s, "id = ? AND is_deleted = false", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *shoeRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Shoe{}).
		Where("id = ? AND is_deleted = false", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *shoeRepo) ListActive(ctx context.Context, f CatalogFilter) ([]CatalogShoe, error) {
	q := r.db.WithContext(ctx).Table("active_shoes AS s").
		Select("DISTINCT s.id, s.name, s.brand, s.description, s.price, s.primary_image_url").
		Joins("LEFT JOIN shoe_sizes ss ON ss.shoe_id = s.id")

	if f.Brand != "" {
		q = q.Where("lower(s.brand) = lower(?)", f.Brand)
	}
	if f.MinSize != nil {
		q = q.Where("ss.size >= ?", *f.MinSize)
	}
	if f.MaxSize != nil {
		q = q.Where("ss.size <= ?", *f.MaxSize)
	}
	if f.MinPrice != nil {
		q = q.Where("s.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("s.price <= ?", *f.MaxPrice)
	}

	var list []CatalogShoe
	err := q.Order("s.name").Scan(&list).Error
	return list, err
}

func (r *shoeRepo) ListAdmin(ctx context.Context) ([]models.Shoe, error) {
	var list []models.Shoe
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("size ASC") }).
		Where("is_deleted = false").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *shoeRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Shoe{}).
		Where("id = ? AND is_deleted = false", id).Updates(fields).Error
}

func (r *shoeRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Shoe{}).
		Where("id = ? AND is_deleted = false", id).
		Updates(map[string]any{"is_deleted": true, "is_active": false})
	return tx.RowsAffected > 0, tx.Error
}

func (r *shoeRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Shoe{}).
		Where("is_deleted = false").Count(&cnt).Error
	return cnt, err
}

func (r *shoeRepo) InfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]CatalogShoe, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]CatalogShoe{}, nil
	}
	var rows []CatalogShoe
	err := r.db.WithContext(ctx).Table("shoes").
		Select("id, name, brand, description, price, image_url AS primary_image_url").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]CatalogShoe, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *shoeRepo) SizesByShoeID(ctx context.Context, shoeID uuid.UUID) ([]SizeStock, error) {
	var rows []SizeStock
	err := r.db.WithContext(ctx).Table("available_sizes").
		Select("size, stock_count").
		Where("shoe_id = ?", shoeID).
		Order("size ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *shoeRepo) SizeFor(ctx context.Context, shoeID uuid.UUID, size int) (*models.ShoeSize, error) {
	var ss models.ShoeSize
	err := r.db.WithContext(ctx).First(&ss, "shoe_id = ? AND size = ?", shoeID, size).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ss, err
}

func (r *shoeRepo) UpsertSize(ctx context.Context, shoeID uuid.UUID, size, stockCount int) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO shoe_sizes (shoe_id, size, stock_count)
VALUES (@sid, @size, @stock)
ON CONFLICT (shoe_id, size) DO UPDATE SET stock_count = EXCLUDED.stock_count
`, map[string]any{
		"sid":   shoeID,
		"size":  size,
		"stock": stockCount,
	}).Error
}

func (r *shoeRepo) DeleteSize(ctx context.Context, shoeID uuid.UUID, size int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("shoe_id = ? AND size = ?", shoeID, size).
		Delete(&models.ShoeSize{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *shoeRepo) TryDecrementStock(ctx context.Context, shoeID uuid.UUID, size, qty int) (bool, error) {
	// атомарно: stock_count -= qty, если хватает
	tx := r.db.WithContext(ctx).Exec(`
UPDATE shoe_sizes
SET stock_count = stock_count - @q
WHERE shoe_id = @sid
  AND size = @size
  AND stock_count >= @q
`, map[string]any{
		"sid":  shoeID,
		"size": size,
		"q":    qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
