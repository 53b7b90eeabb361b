package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/drstein77/lismarket/internal/catalog"
	"github.com/drstein77/lismarket/internal/config"
	"github.com/drstein77/lismarket/internal/controllers"
	"github.com/drstein77/lismarket/internal/dbkeeper"
	"github.com/drstein77/lismarket/internal/logger"
	mw "github.com/drstein77/lismarket/internal/middleware"
	"github.com/drstein77/lismarket/internal/storage"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

type Server struct {
	Log *logger.Logger

	ctx     context.Context
	option  *config.Options
	mx      sync.Mutex
	srv     *http.Server
	storage *storage.MemoryStorage
}

// NewServer parses the options and builds the logger.
func NewServer(ctx context.Context) *Server {
	option := config.NewOptions()
	option.ParseFlags()

	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		log.Fatalln(err)
	}

	return &Server{
		Log:    nLogger,
		ctx:    ctx,
		option: option,
	}
}

// Serve checks the catalog, wires storage and routes and blocks until the server stops.
func (server *Server) Serve() error {
	products := catalog.Products()
	if err := catalog.Validate(products); err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}
	for _, m := range catalog.Audit(products) {
		server.Log.Warn("discount label does not match prices",
			zap.Int("id", m.ID), zap.String("label", m.Label), zap.String("derived", m.Derived))
	}

	var keeper storage.Keeper
	if kp := dbkeeper.NewDBKeeper(server.ctx, server.option.DataBaseDSN, server.option.MigrationsPath, server.Log); kp != nil {
		keeper = kp
	} else if server.option.DataBaseDSN() != "" {
		return errors.New("database is configured but unavailable")
	}

	st, err := storage.NewMemoryStorage(server.ctx, keeper, server.Log)
	if err != nil {
		if keeper != nil {
			keeper.Close()
		}
		return err
	}

	basecontr := controllers.NewBaseController(st, server.Log)

	// create router and mount routes
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.Log.RequestLogger)
	r.Use(mw.CORS(server.option.AllowedOrigins()))
	r.Use(middleware.Compress(5))
	r.Mount("/", basecontr.Route())

	server.mx.Lock()
	server.storage = st
	server.srv = &http.Server{
		Addr:              server.option.RunAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := server.srv
	server.mx.Unlock()

	server.Log.Info("Server started", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits up to timeout for active ones and closes the storage.
func (server *Server) Shutdown(timeout time.Duration) {
	server.mx.Lock()
	defer server.mx.Unlock()

	if server.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := server.srv.Shutdown(ctx); err != nil {
			server.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}
	if server.storage != nil {
		server.storage.Close()
	}

	server.Log.Info("Server stopped")
	_ = server.Log.Sync()
}
