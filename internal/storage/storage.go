package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/drstein77/lismarket/internal/catalog"
	"github.com/drstein77/lismarket/internal/models"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrMirrorDrift = errors.New("database mirror differs from catalog")
)

type Log interface {
	Info(string, ...zap.Field)
}

// Keeper interface for database operations
type Keeper interface {
	SyncProducts(context.Context, []models.Product) (*models.CatalogStats, error)
	GetAllProducts(context.Context) ([]models.Product, error)
	Ping(context.Context) bool
	Close() bool
}

// MemoryStorage serves the catalog from memory.
// It is filled once by NewMemoryStorage and never modified afterwards, so reads need no locking.
type MemoryStorage struct {
	products   []models.Product
	byID       map[int]int
	categories []string

	keeper Keeper
	log    Log
}

// NewMemoryStorage loads the built-in catalog. With a keeper the catalog is mirrored into
// the database and read back; any difference between the two fails construction.
func NewMemoryStorage(ctx context.Context, keeper Keeper, log Log) (*MemoryStorage, error) {
	products := catalog.Products()

	if keeper != nil {
		stats, err := keeper.SyncProducts(ctx, products)
		if err != nil {
			return nil, fmt.Errorf("cannot seed catalog: %w", err)
		}
		log.Info("catalog seeded", zap.Int("total_items", stats.TotalItems))

		stored, err := keeper.GetAllProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot load catalog: %w", err)
		}
		if err := compareMirror(products, stored); err != nil {
			return nil, err
		}
	}

	s := &MemoryStorage{
		products: products,
		byID:     make(map[int]int, len(products)),
		keeper:   keeper,
		log:      log,
	}

	seen := make(map[string]bool)
	for i, p := range products {
		s.byID[p.ID] = i
		if !seen[p.Category] {
			seen[p.Category] = true
			s.categories = append(s.categories, p.Category)
		}
	}

	log.Info("catalog loaded", zap.Int("count", len(products)), zap.Bool("database", keeper != nil))
	return s, nil
}

// GetAllProducts returns the catalog in stored order.
func (s *MemoryStorage) GetAllProducts(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStorage) GetProduct(_ context.Context, id int) (models.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return s.products[i], nil
}

// GetProductsByCategory returns the products whose category equals category exactly.
func (s *MemoryStorage) GetProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetCategories returns the distinct categories in order of first appearance.
func (s *MemoryStorage) GetCategories(_ context.Context) ([]string, error) {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemoryStorage) Stats(_ context.Context) (*models.CatalogStats, error) {
	stats := &models.CatalogStats{
		TotalItems:      len(s.products),
		TotalCategories: len(s.categories),
	}
	for _, p := range s.products {
		stats.TotalPrice += int64(p.Price)
		stats.TotalSavings += int64(p.Savings())
	}
	return stats, nil
}

// Ping reports whether the backing database, if any, is reachable.
func (s *MemoryStorage) Ping(ctx context.Context) bool {
	if s.keeper == nil {
		return true
	}
	return s.keeper.Ping(ctx)
}

// Close releases the keeper.
func (s *MemoryStorage) Close() {
	if s.keeper != nil {
		s.keeper.Close()
	}
}

// compareMirror checks that stored holds exactly the records of want, in any order.
func compareMirror(want, stored []models.Product) error {
	if len(stored) != len(want) {
		return fmt.Errorf("%w: %d rows, want %d", ErrMirrorDrift, len(stored), len(want))
	}

	byID := make(map[int]models.Product, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}
	for _, p := range want {
		got, ok := byID[p.ID]
		if !ok {
			return fmt.Errorf("%w: product %d is missing", ErrMirrorDrift, p.ID)
		}
		if got != p {
			return fmt.Errorf("%w: product %d differs", ErrMirrorDrift, p.ID)
		}
	}
	return nil
}
