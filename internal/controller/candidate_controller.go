package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/rs/zerolog/log"
)

// ListCandidates godoc
// @Summary List candidates
// @Description Paginated candidate listing with optional name/email search and stage filter.
// @Tags Candidates
// @Produce json
// @Param search query string false "Case-insensitive name or email match"
// @Param stage query string false "Filter by stage" Enums(applied, screen, tech, offer, hired, rejected)
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.PagedResponse[dto.CandidateResponseDTO]
// @Failure 500 {object} dto.ErrorResponse
// @Router /candidates [get]
func (ctrl *Controller) ListCandidates(ctx *gin.Context) {
	query := dto.CandidateListQuery{
		Search:   ctx.Query("search"),
		Stage:    ctx.Query("stage"),
		Page:     queryInt(ctx, "page", 1),
		PageSize: queryInt(ctx, "pageSize", 50),
	}

	result, err := ctrl.candidateSvc.List(query)
	if err != nil {
		log.Error().Err(err).Msg("ListCandidates: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve candidates", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CreateCandidate godoc
// @Summary Create a candidate
// @Description Creates a candidate attached to an existing job; stage defaults to applied.
// @Tags Candidates
// @Accept json
// @Produce json
// @Param candidate body dto.CandidateCreateRequest true "Candidate to create"
// @Success 201 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /candidates [post]
func (ctrl *Controller) CreateCandidate(ctx *gin.Context) {
	var req dto.CandidateCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateCandidate: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	candidate, err := ctrl.candidateSvc.Create(req)
	if err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateCandidate: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create candidate", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, candidate)
}

// PatchCandidate godoc
// @Summary Update a candidate
// @Description Applies a partial update, typically a stage transition from the kanban board.
// @Tags Candidates
// @Accept json
// @Produce json
// @Param id path int true "Candidate ID"
// @Param candidate body dto.CandidatePatchRequest true "Fields to change"
// @Success 200 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /candidates/{id} [patch]
func (ctrl *Controller) PatchCandidate(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Candidate ID format"})
		return
	}

	var req dto.CandidatePatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PatchCandidate: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	candidate, err := ctrl.candidateSvc.Patch(id, req)
	if err != nil {
		switch {
		case apperr.IsValidation(err):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		case isNotFound(err):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Candidate not found"})
		default:
			log.Error().Err(err).Uint("candidateID", id).Msg("PatchCandidate: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update candidate", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, candidate)
}

// GetCandidateTimeline godoc
// @Summary Candidate submission timeline
// @Description Assessment submissions for a candidate in chronological order.
// @Tags Candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /candidates/{id}/timeline [get]
func (ctrl *Controller) GetCandidateTimeline(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Candidate ID format"})
		return
	}

	timeline, err := ctrl.responseSvc.Timeline(id)
	if err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("GetCandidateTimeline: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load timeline", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, timeline)
}
