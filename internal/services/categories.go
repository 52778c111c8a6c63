package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"billbook/internal/cache"
	"billbook/internal/core"
	"billbook/internal/ports"
)

const categoriesKey = "all"

// CategoryService lists categories through a short-lived cache.
// Categories only change when a seed inserts them; call Invalidate then.
type CategoryService struct {
	store  ports.CategoryStore
	seeder Seeder
	cache  *cache.LRUCache[[]core.Category]
}

func NewCategoryService(store ports.CategoryStore, seeder Seeder, ttl time.Duration) *CategoryService {
	return &CategoryService{
		store:  store,
		seeder: seeder,
		cache:  cache.NewLRUCache[[]core.Category](1, ttl),
	}
}

// List seeds categories on first use and returns them ordered by type,
// then name.
func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	if cached, ok := s.cache.Get(categoriesKey); ok {
		return slices.Clone(cached), nil
	}
	if s.seeder != nil {
		if err := s.seeder.EnsureCategories(ctx); err != nil {
			return nil, fmt.Errorf("seed categories: %w", err)
		}
	}
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []core.Category{}
	}
	s.cache.Set(categoriesKey, cats)
	return slices.Clone(cats), nil
}

// Invalidate drops the cached list.
func (s *CategoryService) Invalidate() {
	s.cache.Purge()
}

// Cache exposes the cache for cleanup registration and metrics.
func (s *CategoryService) Cache() *cache.LRUCache[[]core.Category] {
	return s.cache
}
