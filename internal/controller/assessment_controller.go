package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/service"
	"github.com/rs/zerolog/log"
)

// GetAllAssessments godoc
// @Summary List all assessments
// @Description Published and draft assessment documents across all jobs; drafts carry isDraft=true.
// @Tags Assessments
// @Produce json
// @Success 200 {array} dto.AssessmentDocument
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments [get]
func (ctrl *Controller) GetAllAssessments(ctx *gin.Context) {
	docs, err := ctrl.draftSvc.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllAssessments: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve assessments", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, docs)
}

// GetAssessmentsForJob godoc
// @Summary List a job's assessments
// @Description Published and draft assessment documents for one job; drafts carry isDraft=true.
// @Tags Assessments
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {array} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse "Invalid Job ID format"
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id} [get]
func (ctrl *Controller) GetAssessmentsForJob(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}
	docs, err := ctrl.draftSvc.ListForJob(jobID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Msg("GetAssessmentsForJob: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve assessments", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, docs)
}

// PublishAssessments godoc
// @Summary Publish assessments for a job
// @Description Upserts each document in the body as a published assessment keyed by its logical id and deletes any matching draft.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param assessments body []dto.AssessmentDocument true "Documents to publish"
// @Success 200 {array} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id} [put]
func (ctrl *Controller) PublishAssessments(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var docs []dto.AssessmentDocument
	if err := ctx.ShouldBindJSON(&docs); err != nil {
		log.Warn().Err(err).Msg("PublishAssessments: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if len(docs) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Request body must contain at least one assessment"})
		return
	}

	published := make([]dto.AssessmentDocument, 0, len(docs))
	for _, doc := range docs {
		if err := service.ValidatePublishable(doc); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		stored, err := ctrl.draftSvc.Publish(jobID, doc)
		if err != nil {
			if apperr.IsValidation(err) {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
				return
			}
			log.Error().Err(err).Uint("jobID", jobID).Msg("PublishAssessments: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to publish assessments", Details: []string{err.Error()}})
			return
		}
		published = append(published, *stored)
	}
	ctx.JSON(http.StatusOK, published)
}

// SaveAssessmentDraft godoc
// @Summary Upsert an assessment draft
// @Description Saves an in-progress assessment document for a job. At most one draft exists per (job, logical id).
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param assessment body dto.AssessmentDocument true "Draft document"
// @Success 200 {object} dto.DraftSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/draft [post]
func (ctrl *Controller) SaveAssessmentDraft(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var doc dto.AssessmentDocument
	if err := ctx.ShouldBindJSON(&doc); err != nil {
		log.Warn().Err(err).Msg("SaveAssessmentDraft: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	draftID, err := ctrl.draftSvc.SaveDraft(jobID, doc)
	if err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("jobID", jobID).Msg("SaveAssessmentDraft: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save assessment draft", Details: []string{err.Error()}})
		return
	}

	summary, err := ctrl.draftSvc.LoadDraft(draftID)
	if err != nil {
		log.Error().Err(err).Uint("draftID", draftID).Msg("SaveAssessmentDraft: Failed to read back saved draft")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Draft saved but could not be read back"})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// DeleteAssessmentDraft godoc
// @Summary Delete an assessment draft
// @Description Deletes the draft identified by its document's logical id. Deleting a missing draft succeeds.
// @Tags Assessments
// @Produce json
// @Param id path int true "Job ID"
// @Param assessment_id path int true "Logical assessment ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/draft/{assessment_id} [delete]
func (ctrl *Controller) DeleteAssessmentDraft(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}
	logicalID, err := strconv.ParseInt(ctx.Param("assessment_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}

	deleted, err := ctrl.draftSvc.DeleteDraftByLogicalID(jobID, logicalID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Int64("assessmentID", logicalID).Msg("DeleteAssessmentDraft: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete assessment draft", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// SubmitAssessment godoc
// @Summary Submit a candidate's assessment
// @Description Validates the answers against the published document's visible questions, stores them as submitted, and records the submission on the candidate's timeline.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param submission body dto.SubmissionRequest true "Candidate, assessment, and answers"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/submit [post]
func (ctrl *Controller) SubmitAssessment(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var req dto.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAssessment: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	submission, err := ctrl.responseSvc.Submit(jobID, req)
	if err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("jobID", jobID).Msg("SubmitAssessment: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit assessment", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// SaveCandidateResponses godoc
// @Summary Upsert a candidate's in-progress answers
// @Description Stores the current answers for (assessment, candidate). An already-submitted record stays submitted.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment logical ID"
// @Param responses body dto.ResponseSaveRequest true "Answers"
// @Success 200 {object} dto.ResponseRecord
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/responses [post]
func (ctrl *Controller) SaveCandidateResponses(ctx *gin.Context) {
	assessmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}

	var req dto.ResponseSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveCandidateResponses: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if _, err := ctrl.responseSvc.SaveResponses(assessmentID, req.CandidateID, req.Responses, req.IsSubmitted); err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Int64("assessmentID", assessmentID).Msg("SaveCandidateResponses: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save responses", Details: []string{err.Error()}})
		return
	}

	record, err := ctrl.responseSvc.LoadResponses(assessmentID, req.CandidateID)
	if err != nil {
		log.Error().Err(err).Int64("assessmentID", assessmentID).Msg("SaveCandidateResponses: Failed to read back responses")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Responses saved but could not be read back"})
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// ScheduleCandidateResponses godoc
// @Summary Schedule a debounced save of a candidate's answers
// @Description Queues the answers for a deferred write. Repeated calls within the debounce window replace the pending payload; only the last one is persisted.
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment logical ID"
// @Param responses body dto.ResponseSaveRequest true "Answers"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Router /assessments/{id}/responses/autosave [post]
func (ctrl *Controller) ScheduleCandidateResponses(ctx *gin.Context) {
	assessmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}

	var req dto.ResponseSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ScheduleCandidateResponses: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	ctrl.responseSvc.ScheduleSave(assessmentID, req.CandidateID, req.Responses)
	ctx.JSON(http.StatusAccepted, gin.H{"scheduled": true})
}

// GetCandidateResponses godoc
// @Summary Load a candidate's stored answers
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment logical ID"
// @Param candidate_id path int true "Candidate ID"
// @Success 200 {object} dto.ResponseRecord
// @Failure 404 {object} dto.ErrorResponse "No responses stored"
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/responses/{candidate_id} [get]
func (ctrl *Controller) GetCandidateResponses(ctx *gin.Context) {
	assessmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assessment ID format"})
		return
	}
	candidateID, err := strconv.ParseUint(ctx.Param("candidate_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Candidate ID format"})
		return
	}

	record, err := ctrl.responseSvc.LoadResponses(assessmentID, uint(candidateID))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No responses found"})
			return
		}
		log.Error().Err(err).Int64("assessmentID", assessmentID).Msg("GetCandidateResponses: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load responses", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, record)
}
