package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront-backend/apperrors"
	"storefront-backend/models"
	"storefront-backend/storage"
	"storefront-backend/store"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// CatalogController serves the product catalog: listing with the live
// filter, inventory CRUD, and image upload.
type CatalogController struct {
	store    *store.Store
	cache    *CatalogCache
	images   storage.ImageStore
	validate *validator.Validate
}

func NewCatalogController(st *store.Store, cache *CatalogCache, images storage.ImageStore) *CatalogController {
	return &CatalogController{
		store:    st,
		cache:    cache,
		images:   images,
		validate: validator.New(),
	}
}

// GetProducts lists the catalog through the filter. Query parameters set
// the process-wide filter state before derivation; facet lists ride along
// with the listing.
func (cc *CatalogController) GetProducts(c *gin.Context) {
	f := store.FilterState{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
	}
	cc.store.SetFilter(f)

	if cached, ok := cc.cache.Get(c.Request.Context(), f.Query, f.Category, f.Brand); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	response := map[string]interface{}{
		"products":   cc.store.FilteredProducts(),
		"categories": cc.store.Categories(),
		"brands":     cc.store.Brands(),
		"degraded":   cc.store.Degraded(),
	}
	cc.cache.SetAsync(f.Query, f.Category, f.Brand, response)
	c.JSON(http.StatusOK, response)
}

// GetProduct returns one product by id.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	p, ok := cc.store.Product(c.Param("id"))
	if !ok {
		respondError(c, store.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProductRequest is the inventory creation payload.
type CreateProductRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" validate:"required"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price" validate:"gte=0"`
	Cost          float64 `json:"cost" validate:"gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	IsSale        bool    `json:"isSale"`
	DiscountPrice float64 `json:"discountPrice" validate:"gte=0"`
}

// CreateProduct adds a product to the inventory.
func (cc *CatalogController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	if err := cc.validate.Struct(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	product := models.Product{
		Code:          req.Code,
		Name:          req.Name,
		Brand:         req.Brand,
		Category:      req.Category,
		Price:         req.Price,
		Cost:          req.Cost,
		Stock:         req.Stock,
		Description:   req.Description,
		Image:         req.Image,
		IsSale:        req.IsSale,
		DiscountPrice: req.DiscountPrice,
	}
	created, res, err := cc.store.AddProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Bump(c.Request.Context())

	body := resultFields(res)
	body["product"] = created
	c.JSON(http.StatusCreated, body)
}

// UpdateProduct applies a partial edit to a product.
func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}

	res, err := cc.store.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Bump(c.Request.Context())

	body := resultFields(res)
	if p, ok := cc.store.Product(c.Param("id")); ok {
		body["product"] = p
	}
	c.JSON(http.StatusOK, body)
}

// DeleteProduct removes a product from the catalog. Historical sales keep
// their line-item snapshots.
func (cc *CatalogController) DeleteProduct(c *gin.Context) {
	res, err := cc.store.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	cc.cache.Bump(c.Request.Context())
	c.JSON(http.StatusOK, resultFields(res))
}

// UploadImage stores a product image and returns its public URL.
func (cc *CatalogController) UploadImage(c *gin.Context) {
	if cc.images == nil {
		respondError(c, apperrors.New(http.StatusServiceUnavailable, "image storage is not configured", nil))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "an image file is required", err))
		return
	}
	if file.Size > maxImageSize {
		respondError(c, apperrors.New(http.StatusBadRequest, "image too large (max 5MB)", nil))
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		respondError(c, apperrors.New(http.StatusBadRequest, "invalid image type. Allowed: jpeg, jpg, png, webp, gif", nil))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "could not read upload", err))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "could not read upload", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	path := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	url, err := cc.images.Upload(c.Request.Context(), path, data, contentType)
	if err != nil {
		zap.L().Error("image upload failed", zap.String("path", path), zap.Error(err))
		respondError(c, apperrors.New(http.StatusBadGateway,
			"Could not upload the image. Make sure the \"products\" bucket exists and is public.", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
