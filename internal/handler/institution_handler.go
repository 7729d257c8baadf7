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

// InstitutionHandler handles institution registry endpoints.
type InstitutionHandler struct {
	institutionService *service.InstitutionService
}

// NewInstitutionHandler creates a new InstitutionHandler.
func NewInstitutionHandler(institutionService *service.InstitutionService) *InstitutionHandler {
	return &InstitutionHandler{institutionService: institutionService}
}

// List godoc
// GET /api/v1/institutions
// Lists the institution registry.
func (h *InstitutionHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"institutions": h.institutionService.List(),
	})
}

// Resolve godoc
// GET /api/v1/institutions/resolve?name=...
// Resolves a free-text institution name to a registry entry.
func (h *InstitutionHandler) Resolve(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	resolved, err := h.institutionService.Resolve(name)
	if err != nil {
		if errors.Is(err, service.ErrInstitutionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"institution": resolved})
}

// CreateInstitutionRequest is the payload for adding a registry entry.
type CreateInstitutionRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Code string `json:"code" binding:"required,max=6"`
}

// Create godoc
// POST /api/v1/institutions
// Adds a registry entry and reloads the cache.
func (h *InstitutionHandler) Create(c *gin.Context) {
	var req CreateInstitutionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	inst := &model.Institution{Name: req.Name, Code: req.Code}
	if err := h.institutionService.Add(c.Request.Context(), inst); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"institution": inst})
}
