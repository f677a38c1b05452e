package http

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

const (
	serviceName    = "kitchen-interchange"
	serviceVersion = "1.0.0"
)

// CatalogImporter imports catalog markup and answers catalog lookups
type CatalogImporter interface {
	Import(ctx context.Context, markup string) (*domain.ImportResult, error)
	ImportFromURL(ctx context.Context, sourceURL string) (*domain.ImportResult, error)
	Product(ctx context.Context, linkID string) (*domain.ProductRecord, error)
	Summary(ctx context.Context) (domain.CategoryTally, error)
}

// AssemblyExporter renders a stored job into an assembly document
type AssemblyExporter interface {
	Export(ctx context.Context, jobID string) (*domain.ExportResult, error)
}

// PriceUpdater applies admin price changes
type PriceUpdater interface {
	ApplyPriceChanges(ctx context.Context, caller *domain.Caller, changes []domain.PriceChange) (*domain.PriceUpdateResult, error)
	History(ctx context.Context, caller *domain.Caller, sku string, limit int) ([]domain.PriceHistoryEntry, error)
}

// Handler holds dependencies for HTTP handlers.
// A nil service makes its endpoints answer 501.
type Handler struct {
	catalog CatalogImporter
	export  AssemblyExporter
	pricing PriceUpdater
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogImporter, export AssemblyExporter, pricing PriceUpdater, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		export:  export,
		pricing: pricing,
		logger:  logger.Named("http"),
	}
}

// ImportRequest is the catalog import body. Exactly one field is expected.
type ImportRequest struct {
	XMLContent string `json:"xmlContent"`
	SourceURL  string `json:"sourceUrl"`
}

// PriceUpdateRequest is the admin price update body
type PriceUpdateRequest struct {
	Changes []domain.PriceChange `json:"changes" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// ImportCatalog handles catalog import requests
func (h *Handler) ImportCatalog(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog import")
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	var (
		result *domain.ImportResult
		err    error
	)
	if strings.TrimSpace(req.XMLContent) == "" && strings.TrimSpace(req.SourceURL) != "" {
		result, err = h.catalog.ImportFromURL(c.Request.Context(), req.SourceURL)
	} else {
		result, err = h.catalog.Import(c.Request.Context(), req.XMLContent)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CatalogSummary returns stored product counts per category
func (h *Handler) CatalogSummary(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog import")
		return
	}

	tally, err := h.catalog.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": tally})
}

// GetProduct returns one stored product record
func (h *Handler) GetProduct(c *gin.Context) {
	if h.catalog == nil {
		notConfigured(c, "catalog import")
		return
	}

	product, err := h.catalog.Product(c.Request.Context(), c.Param("linkId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ExportAssembly streams the assembly document for a job as an attachment
func (h *Handler) ExportAssembly(c *gin.Context) {
	if h.export == nil {
		notConfigured(c, "assembly export")
		return
	}

	result, err := h.export.Export(c.Request.Context(), strings.TrimSpace(c.Param("jobId")))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", attachmentDisposition(result.Filename+".xml"))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(result.Document))
}

// ApplyPriceUpdates applies a batch of list price changes for an admin caller
func (h *Handler) ApplyPriceUpdates(c *gin.Context) {
	if h.pricing == nil {
		notConfigured(c, "pricing")
		return
	}

	var req PriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	result, err := h.pricing.ApplyPriceChanges(c.Request.Context(), callerFrom(c), req.Changes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": result.Failed == 0,
		"updated": result.Updated,
		"failed":  result.Failed,
		"errors":  result.Errors,
	})
}

// PriceHistory lists applied price changes for a SKU, newest first
func (h *Handler) PriceHistory(c *gin.Context) {
	if h.pricing == nil {
		notConfigured(c, "pricing")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(c, domain.ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	history, err := h.pricing.History(c.Request.Context(), callerFrom(c), c.Param("sku"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

// respondError maps domain errors to a status code and the failure payload
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	if root := inputRoot(err); root != nil {
		message = root.Error()
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}

func statusFor(err error) int {
	switch {
	case domain.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFeedFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// inputRoot returns the bare sentinel for errors whose message is part of the API contract
func inputRoot(err error) error {
	for _, target := range []error{domain.ErrNoXMLContent, domain.ErrNoProducts, domain.ErrJobIDRequired} {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

func notConfigured(c *gin.Context, feature string) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"success": false,
		"error":   feature + " not configured",
	})
}

// attachmentDisposition quotes or RFC 2231 encodes the filename as the header requires
func attachmentDisposition(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
