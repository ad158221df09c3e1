package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/models"
	"github.com/zemenu6/dbrand-backend/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShoeCache — необязательный кэш карточек (redis). nil отключает.
type ShoeCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type shoeService struct {
	repo     *repository.Repository
	cache    ShoeCache
	cacheTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewShoeService(repo *repository.Repository, cache ShoeCache, cacheTTL time.Duration, log *zap.Logger) ShoeService {
	return &shoeService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
	}
}

func shoeCacheKey(id uuid.UUID) string { return fmt.Sprintf("shoe:%s", id) }

func (s *shoeService) ListShoes(ctx context.Context, f repository.CatalogFilter) ([]ShoeView, error) {
	rows, err := s.repo.Shoes.ListActive(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]ShoeView, 0, len(rows))
	for _, row := range rows {
		sizes, err := s.repo.Shoes.SizesByShoeID(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, viewFromCatalog(row, sizes))
	}
	return out, nil
}

func (s *shoeService) GetShoe(ctx context.Context, id uuid.UUID) (*ShoeView, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, shoeCacheKey(id)); err == nil && raw != "" {
			var view ShoeView
			if err := json.Unmarshal([]byte(raw), &view); err == nil {
				return &view, nil
			}
		}
	}

	row, err := s.repo.Shoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrShoeNotFound
	}
	sizes, err := s.repo.Shoes.SizesByShoeID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := viewFromCatalog(*row, sizes)

	if s.cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, shoeCacheKey(id), raw, s.cacheTTL); err != nil {
				s.log.Warn("Не удалось записать карточку в кэш", zap.Error(err))
			}
		}
	}
	return &view, nil
}

func (s *shoeService) ListShoesAdmin(ctx context.Context) ([]models.Shoe, error) {
	return s.repo.Shoes.ListAdmin(ctx)
}

func (s *shoeService) GetShoeAdmin(ctx context.Context, id uuid.UUID) (*models.Shoe, error) {
	shoe, err := s.repo.Shoes.GetByIDAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if shoe == nil {
		return nil, ErrShoeNotFound
	}
	return shoe, nil
}

func (s *shoeService) CreateShoe(ctx context.Context, in ShoeInput) (*models.Shoe, error) {
	now := s.now()
	shoe := &models.Shoe{
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Shoes.Create(ctx, shoe); err != nil {
		return nil, err
	}
	return shoe, nil
}

func (s *shoeService) UpdateShoe(ctx context.Context, id uuid.UUID, patch ShoePatch) (*models.Shoe, error) {
	shoe, err := s.repo.Shoes.GetByIDAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if shoe == nil {
		return nil, ErrShoeNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Brand != nil {
		fields["brand"] = strings.TrimSpace(*patch.Brand)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return shoe, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Shoes.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.repo.Shoes.GetByIDAdmin(ctx, id)
}

func (s *shoeService) DeleteShoe(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Shoes.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrShoeNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *shoeService) UpsertSize(ctx context.Context, shoeID uuid.UUID, size, stockCount int) error {
	if size <= 0 {
		return ErrSizeInvalid
	}
	if stockCount < 0 {
		return ErrQuantityInvalid
	}
	exists, err := s.repo.Shoes.Exists(ctx, shoeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrShoeNotFound
	}
	if err := s.repo.Shoes.UpsertSize(ctx, shoeID, size, stockCount); err != nil {
		return err
	}
	s.invalidate(ctx, shoeID)
	return nil
}

func (s *shoeService) DeleteSize(ctx context.Context, shoeID uuid.UUID, size int) error {
	ok, err := s.repo.Shoes.DeleteSize(ctx, shoeID, size)
	if err != nil {
		return err
	}
	if !ok {
		return ErrShoeNotFound
	}
	s.invalidate(ctx, shoeID)
	return nil
}

func (s *shoeService) ShoeCount(ctx context.Context) (int64, error) {
	return s.repo.Shoes.Count(ctx)
}

func (s *shoeService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, shoeCacheKey(id)); err != nil {
		s.log.Warn("Не удалось сбросить кэш карточки", zap.Error(err))
	}
}

func viewFromCatalog(row repository.CatalogShoe, sizes []repository.SizeStock) ShoeView {
	if sizes == nil {
		sizes = []repository.SizeStock{}
	}
	return ShoeView{
		ID:          row.ID,
		Name:        row.Name,
		Brand:       row.Brand,
		Description: row.Description,
		Price:       row.Price,
		ImageURL:    row.PrimaryImageURL,
		Sizes:       sizes,
	}
}
