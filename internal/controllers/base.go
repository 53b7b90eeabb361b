package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/drstein77/lismarket/internal/compress"
	"github.com/drstein77/lismarket/internal/middleware"
	"github.com/drstein77/lismarket/internal/models"
	"github.com/drstein77/lismarket/internal/storage"
	"github.com/go-chi/chi"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const exportFileName = "products.csv"

// Storage interface for catalog reads
type Storage interface {
	GetAllProducts(context.Context) ([]models.Product, error)
	GetProduct(context.Context, int) (models.Product, error)
	GetProductsByCategory(context.Context, string) ([]models.Product, error)
	GetCategories(context.Context) ([]string, error)
	Stats(context.Context) (*models.CatalogStats, error)
	Ping(context.Context) bool
}

// Log interface for logging
type Log interface {
	Info(string, ...zapcore.Field)
	Error(string, ...zapcore.Field)
}

// BaseController struct for handling requests
type BaseController struct {
	storage Storage
	log     Log
}

// NewBaseController creates a new BaseController instance
func NewBaseController(storage Storage, log Log) *BaseController {
	return &BaseController{
		storage: storage,
		log:     log,
	}
}

// Route sets up the routes for the BaseController
func (h *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/ping", h.ping)

	r.Route("/api/v0", func(r chi.Router) {
		r.Get("/products", h.getProducts)
		r.Get("/products/{id}", h.getProduct)
		r.With(middleware.ArchiveTypeMiddleware).Get("/products/export", h.exportProducts)
		r.Get("/categories", h.getCategories)
		r.Get("/stats", h.getStats)
	})

	return r
}

func (h *BaseController) getProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.storage.GetProductsByCategory(r.Context(), category)
	} else {
		products, err = h.storage.GetAllProducts(r.Context())
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve products: %v", err))
		return
	}

	h.respondJSON(w, http.StatusOK, products)
}

func (h *BaseController) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.storage.GetProduct(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		h.respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product: %v", err))
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

func (h *BaseController) exportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.storage.GetAllProducts(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve products: %v", err))
		return
	}

	var archive io.WriteCloser
	switch middleware.ArchiveType(r.Context()) {
	case middleware.ArchiveTar:
		w.Header().Set("Content-Type", "application/x-tar")
		w.Header().Set("Content-Disposition", `attachment; filename="products.tar"`)
		archive = compress.NewTarWriter(w, exportFileName)
	default:
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="products.zip"`)
		zw, err := compress.NewZipWriter(w, exportFileName)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, "Failed to create archive")
			return
		}
		archive = zw
	}

	// headers are already sent once the archive starts writing, so failures are only logged
	if err := gocsv.Marshal(products, archive); err != nil {
		h.log.Error("Failed to write CSV", zap.Error(err))
	}
	if err := archive.Close(); err != nil {
		h.log.Error("Failed to finish archive", zap.Error(err))
	}
}

func (h *BaseController) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.storage.GetCategories(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve categories: %v", err))
		return
	}

	h.respondJSON(w, http.StatusOK, categories)
}

func (h *BaseController) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.Stats(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to calculate stats: %v", err))
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func (h *BaseController) ping(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Ping(r.Context()) {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *BaseController) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *BaseController) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
