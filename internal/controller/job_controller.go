package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/rs/zerolog/log"
)

// ListJobs godoc
// @Summary List jobs
// @Description Paginated job listing with optional title search, status filter, and sort.
// @Tags Jobs
// @Produce json
// @Param search query string false "Case-insensitive title match"
// @Param status query string false "Filter by status" Enums(active, archived)
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Param sort query string false "Sort field" Enums(title, status, order)
// @Success 200 {object} dto.PagedResponse[dto.JobResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [get]
func (ctrl *Controller) ListJobs(ctx *gin.Context) {
	query := dto.JobListQuery{
		Search:   ctx.Query("search"),
		Status:   ctx.Query("status"),
		Sort:     ctx.Query("sort"),
		Page:     queryInt(ctx, "page", 1),
		PageSize: queryInt(ctx, "pageSize", 10),
	}

	result, err := ctrl.jobSvc.List(query)
	if err != nil {
		log.Error().Err(err).Msg("ListJobs: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve jobs", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CreateJob godoc
// @Summary Create a job
// @Description Creates a job with a slug derived from the title and an order one past the current maximum.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job body dto.JobCreateRequest true "Job to create"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [post]
func (ctrl *Controller) CreateJob(ctx *gin.Context) {
	var req dto.JobCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateJob: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	job, err := ctrl.jobSvc.Create(req)
	if err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateJob: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create job", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, job)
}

// PatchJob godoc
// @Summary Update a job
// @Description Applies a partial update; absent fields keep their stored values.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param job body dto.JobPatchRequest true "Fields to change"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id} [patch]
func (ctrl *Controller) PatchJob(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var req dto.JobPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PatchJob: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	job, err := ctrl.jobSvc.Patch(id, req)
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case isNotFound(err):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Job not found"})
		default:
			log.Error().Err(err).Uint("jobID", id).Msg("PatchJob: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update job", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, job)
}

// ReorderJob godoc
// @Summary Reorder a job
// @Description Moves a job from one position to another. A stale fromOrder is a no-op.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param reorder body dto.JobReorderRequest true "Source and target positions"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/{id}/reorder [patch]
func (ctrl *Controller) ReorderJob(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var req dto.JobReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ReorderJob: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := ctrl.jobSvc.Reorder(id, req); err != nil {
		switch {
		case apperr.IsValidation(err):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case isNotFound(err):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Job not found"})
		default:
			log.Error().Err(err).Uint("jobID", id).Msg("ReorderJob: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to reorder job", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func queryInt(ctx *gin.Context, name string, fallback int) int {
	val, err := strconv.Atoi(ctx.Query(name))
	if err != nil || val <= 0 {
		return fallback
	}
	return val
}
