package handlers

import (
	"errors"
	"net/http"
	"strings"

	"supplier-registry-backend/models"
	"supplier-registry-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// genericErrorMessage is what clients see for any failure whose detail is
// not safe to expose.
const genericErrorMessage = "Something went wrong. Please try again."

// SupplierHandler handles HTTP requests for supplier registration
type SupplierHandler struct {
	service *service.SupplierService
	log     zerolog.Logger
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(svc *service.SupplierService, log zerolog.Logger) *SupplierHandler {
	return &SupplierHandler{service: svc, log: log}
}

// RegisterSupplier handles POST /api/suppliers
func (h *SupplierHandler) RegisterSupplier(c *gin.Context) {
	var in models.SupplierSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "request body must be valid JSON",
		})
		return
	}

	supplier, err := h.service.Submit(c.Request.Context(), clientKey(c), &in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Supplier registered successfully",
		"supplierId": supplier.ID,
	})
}

// GetSupplier handles GET /api/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid supplier ID format",
		})
		return
	}

	supplier, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "supplier not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// respondError maps the pipeline's tagged errors to HTTP statuses. Only
// messages carried by validation-class kinds reach the client; everything
// else is logged in full and answered with a generic message.
func (h *SupplierHandler) respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var fileErr *service.FileError

	switch {
	case service.IsKind(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "Too many submissions. Please try again later.",
		})

	case errors.As(err, &validationErr):
		details := make([]string, len(validationErr.Fields))
		for i, f := range validationErr.Fields {
			details[i] = f.Label + " " + f.Message
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "validation failed",
			"details": details,
			"fields":  validationErr.Fields,
		})

	case errors.As(err, &fileErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fileErr.Error(),
		})

	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("submission processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   genericErrorMessage,
		})
	}
}

// clientKey derives the rate-limit key from the trusted proxy's forwarded
// address header: the first comma-separated value, or "unknown" when the
// header is absent, which makes all header-less clients share one bucket.
func clientKey(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded == "" {
		return "unknown"
	}
	first, _, _ := strings.Cut(forwarded, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return "unknown"
	}
	return first
}
