package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/response"
	"github.com/macuoit/articulation-backend/internal/service"
	"github.com/macuoit/articulation-backend/internal/validator"
)

// CatalogHandler handles catalog administration endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListPartitions godoc
// GET /api/v1/catalog/partitions
// Lists loaded catalog editions with row counts.
func (h *CatalogHandler) ListPartitions(c *gin.Context) {
	partitions, err := h.catalogService.Partitions()
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrCatalogUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"partitions": partitions})
}

// Refresh godoc
// POST /api/v1/catalog/refresh
// Reloads the index from PostgreSQL.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalogService.Refresh(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	partitions, err := h.catalogService.Partitions()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"partitions": partitions})
}

// CreateRow godoc
// POST /api/v1/catalog/rows
// Adds a catalog row and rebuilds the index.
func (h *CatalogHandler) CreateRow(c *gin.Context) {
	var req model.CreateCatalogRowRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	row, err := h.catalogService.AddRow(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"row": row})
}

// CreateEquivalency godoc
// POST /api/v1/catalog/equivalencies
// Adds an institution-pair equivalency row and rebuilds the index.
func (h *CatalogHandler) CreateEquivalency(c *gin.Context) {
	var req model.CreateEquivalencyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	row := &model.EquivalencyRow{
		SendCourseCode:     req.SendCourseCode,
		SendEditionLowYear: req.SendEditionLowYear,
		ReceiveCourseCode:  req.ReceiveCourseCode,
		ReceiveCourseTitle: req.ReceiveCourseTitle,
		ReceiveUnits:       req.ReceiveUnits,
	}
	if err := h.catalogService.AddEquivalency(c.Request.Context(), row); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"row": row})
}
