package dbkeeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drstein77/lismarket/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

type DBKeeper struct {
	pool *pgxpool.Pool
	log  Log
}

// NewDBKeeper connects to the database and applies migrations.
// It returns nil when the DSN is empty or the database cannot be prepared.
func NewDBKeeper(ctx context.Context, dsn func() string, migrationsPath func() string, log Log) *DBKeeper {
	addr := dsn()
	if addr == "" {
		log.Info("database dsn is empty, serving the catalog from memory")
		return nil
	}

	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		log.Error("Unable to parse database DSN", zap.Error(err))
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Error("Unable to connect to database", zap.Error(err))
		return nil
	}

	if err := applyMigrations(addr, migrationsPath()); err != nil {
		log.Error("Unable to migrate database", zap.Error(err))
		pool.Close()
		return nil
	}

	log.Info("Connected!")

	return &DBKeeper{
		pool: pool,
		log:  log,
	}
}

// SyncProducts makes the products table an exact mirror of products in one transaction:
// rows are upserted and rows with any other id are deleted. It returns stats over the table.
// An empty list is a no-op and never clears the table.
func (kp *DBKeeper) SyncProducts(ctx context.Context, products []models.Product) (_ *models.CatalogStats, err error) {
	if len(products) == 0 {
		return &models.CatalogStats{}, nil
	}

	if kp.pool == nil {
		return nil, fmt.Errorf("database connection pool is nil")
	}

	tx, err := kp.pool.Begin(ctx)
	if err != nil {
		kp.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				kp.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
			}
		}
	}()

	stmt := `
		INSERT INTO products (id, name, price, old_price, discount, image, description, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			old_price = EXCLUDED.old_price,
			discount = EXCLUDED.discount,
			image = EXCLUDED.image,
			description = EXCLUDED.description,
			category = EXCLUDED.category
	`
	batch := &pgx.Batch{}
	ids := make([]int32, 0, len(products))
	for _, p := range products {
		batch.Queue(stmt, p.ID, p.Name, p.Price, p.OldPrice, p.Discount, p.Image, p.Description, p.Category)
		ids = append(ids, int32(p.ID))
	}
	batch.Queue(`DELETE FROM products WHERE NOT (id = ANY($1))`, ids)

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, execErr := br.Exec(); execErr != nil {
			br.Close()
			err = fmt.Errorf("failed to execute batch query: %w", execErr)
			return nil, err
		}
	}
	if closeErr := br.Close(); closeErr != nil {
		err = fmt.Errorf("failed to close batch results: %w", closeErr)
		return nil, err
	}

	var resp models.CatalogStats
	statsCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := tx.QueryRow(statsCtx, `
		SELECT COUNT(*), COUNT(DISTINCT category),
		       COALESCE(SUM(price), 0), COALESCE(SUM(old_price - price), 0)
		FROM products
	`)
	if scanErr := row.Scan(&resp.TotalItems, &resp.TotalCategories, &resp.TotalPrice, &resp.TotalSavings); scanErr != nil {
		err = fmt.Errorf("failed to calculate stats: %w", scanErr)
		return nil, err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		return nil, err
	}

	kp.log.Info("Products synchronized", zap.Int("total_items", resp.TotalItems))
	return &resp, nil
}

// GetAllProducts returns every stored product ordered by id.
func (kp *DBKeeper) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if kp.pool == nil {
		return nil, fmt.Errorf("database connection pool is nil")
	}

	query := `
		SELECT id, name, price, old_price, discount, image, description, category
		FROM products
		ORDER BY id
	`

	rows, err := kp.pool.Query(ctx, query)
	if err != nil {
		kp.log.Error("Failed to execute query", zap.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.OldPrice,
			&p.Discount,
			&p.Image,
			&p.Description,
			&p.Category,
		)
		if err != nil {
			kp.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		products = append(products, p)
	}

	if rows.Err() != nil {
		kp.log.Error("Error occurred during rows iteration", zap.Error(rows.Err()))
		return nil, fmt.Errorf("error during rows iteration: %w", rows.Err())
	}

	kp.log.Info("Successfully retrieved all products", zap.Int("count", len(products)))
	return products, nil
}

func (kp *DBKeeper) Ping(ctx context.Context) bool {
	if kp.pool == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kp.pool.Ping(ctx); err != nil {
		kp.log.Error("Database ping failed", zap.Error(err))
		return false
	}

	return true
}

func (kp *DBKeeper) Close() bool {
	if kp.pool != nil {
		kp.pool.Close()
		kp.log.Info("Database connection pool closed")
		return true
	}
	kp.log.Info("Attempted to close a nil database connection pool")
	return false
}
