package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/response"
	"github.com/macuoit/articulation-backend/internal/service"
	"github.com/macuoit/articulation-backend/internal/validator"
)

// pdfMagic is the leading byte signature of a PDF document.
const pdfMagic = "%PDF-"

// TranscriptHandler handles transcript processing endpoints.
type TranscriptHandler struct {
	cfg               *config.Config
	transcriptService *service.TranscriptService
	enrichmentService *service.EnrichmentService
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(
	cfg *config.Config,
	transcriptService *service.TranscriptService,
	enrichmentService *service.EnrichmentService,
) *TranscriptHandler {
	return &TranscriptHandler{
		cfg:               cfg,
		transcriptService: transcriptService,
		enrichmentService: enrichmentService,
	}
}

// Upload godoc
// POST /api/v1/transcripts
// Accepts a multipart PDF and returns the queued job.
func (h *TranscriptHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if int64(len(data)) > h.cfg.MaxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}
	if !strings.HasPrefix(string(data[:min(len(data), len(pdfMagic))]), pdfMagic) {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	state, err := h.transcriptService.Submit(c.Request.Context(), header.Filename, data)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"job": state})
}

// GetJob godoc
// GET /api/v1/transcripts/:job_id
// Returns the job's current state.
func (h *TranscriptHandler) GetJob(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	state, err := h.transcriptService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"job": state})
}

// GetResult godoc
// GET /api/v1/transcripts/:job_id/result
// Returns the enriched transcript once the job is done.
func (h *TranscriptHandler) GetResult(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	result, err := h.transcriptService.GetResult(c.Request.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrJobNotFinished):
			response.Fail(c, http.StatusConflict, response.ErrJobNotFinished)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Enrich godoc
// POST /api/v1/transcripts/enrich
// Runs the match cascade synchronously on already-extracted terms.
func (h *TranscriptHandler) Enrich(c *gin.Context) {
	var req model.EnrichRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	stats, err := h.enrichmentService.Enrich(req.Terms)
	if err != nil {
		if errors.Is(err, service.ErrCatalogUnavailable) {
			response.Fail(c, http.StatusServiceUnavailable, response.ErrCatalogUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"terms":      req.Terms,
		"statistics": stats,
	})
}

// Feedback godoc
// POST /api/v1/transcripts/:job_id/feedback
// Records a reviewer comment for a finished job.
func (h *TranscriptHandler) Feedback(c *gin.Context) {
	jobID, ok := parseJobID(c)
	if !ok {
		return
	}

	var req model.FeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.transcriptService.Feedback(c.Request.Context(), jobID, req.Comment); err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrJobNotFinished):
			response.Fail(c, http.StatusConflict, response.ErrJobNotFinished)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ListReviews godoc
// GET /api/v1/reviews
// Returns the newest persisted review entries, capped by ?limit.
func (h *TranscriptHandler) ListReviews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	reviews, err := h.transcriptService.ListReviews(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if reviews == nil {
		reviews = []model.ReviewEntry{}
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

// parseJobID validates the :job_id route param as a UUID.
func parseJobID(c *gin.Context) (string, bool) {
	raw := c.Param("job_id")
	if _, err := uuid.Parse(raw); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return raw, true
}
