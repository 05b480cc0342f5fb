package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/service"
	"github.com/rs/zerolog/log"
)

// builderSession resolves the open session for the job in the path, writing
// the error response itself when there is none.
func (ctrl *Controller) builderSession(ctx *gin.Context) (*service.BuilderSession, bool) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return nil, false
	}
	session, ok := ctrl.builderSvc.Session(jobID)
	if !ok {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No builder session open for this job"})
		return nil, false
	}
	return session, true
}

// OpenBuilderSession godoc
// @Summary Open a builder session
// @Description Starts editing an assessment for a job. An empty body opens a blank document; a document body resumes editing it. Replaces any session already open for the job.
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param assessment body dto.AssessmentDocument false "Document to resume editing"
// @Success 201 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder [post]
func (ctrl *Controller) OpenBuilderSession(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}

	var doc *dto.AssessmentDocument
	if ctx.Request.ContentLength > 0 {
		var body dto.AssessmentDocument
		if err := ctx.ShouldBindJSON(&body); err != nil {
			log.Warn().Err(err).Msg("OpenBuilderSession: Failed to bind JSON")
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
			return
		}
		doc = &body
	}

	session := ctrl.builderSvc.OpenSession(jobID, doc)
	ctx.JSON(http.StatusCreated, session.Document())
}

// GetBuilderDocument godoc
// @Summary Current builder document
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder [get]
func (ctrl *Controller) GetBuilderDocument(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, session.Document())
}

// UpdateBuilderMeta godoc
// @Summary Update title, description, or settings
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param meta body dto.BuilderMetaRequest true "Fields to change"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder [patch]
func (ctrl *Controller) UpdateBuilderMeta(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}

	var req dto.BuilderMetaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if req.Title != nil {
		session.SetTitle(*req.Title)
	}
	if req.Description != nil {
		session.SetDescription(*req.Description)
	}
	if req.Settings != nil {
		session.SetSettings(*req.Settings)
	}
	ctx.JSON(http.StatusOK, session.Document())
}

// CloseBuilderSession godoc
// @Summary Close a builder session
// @Description Discards the in-memory session and cancels any pending auto-save. Closing a job with no open session succeeds.
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder [delete]
func (ctrl *Controller) CloseBuilderSession(ctx *gin.Context) {
	jobID, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Job ID format"})
		return
	}
	ctrl.builderSvc.CloseSession(jobID)
	ctx.JSON(http.StatusOK, gin.H{"closed": true})
}

// SaveBuilderDraft godoc
// @Summary Flush the session to a draft immediately
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/save [post]
func (ctrl *Controller) SaveBuilderDraft(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	if err := session.SaveNow(); err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("SaveBuilderDraft: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to save draft", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"saved": true})
}

// PublishBuilderDocument godoc
// @Summary Publish the session's document
// @Description Flushes pending edits, validates the document, publishes it, and deletes the matching draft.
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/publish [post]
func (ctrl *Controller) PublishBuilderDocument(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	published, err := session.PublishNow()
	if err != nil {
		if apperr.IsValidation(err) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("PublishBuilderDocument: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to publish assessment", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, published)
}

// AddBuilderSection godoc
// @Summary Add a section
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Success 201 {object} map[string]int64
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections [post]
func (ctrl *Controller) AddBuilderSection(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	id := session.AddSection()
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateBuilderSection godoc
// @Summary Rename a section
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param section body dto.BuilderSectionRequest true "Title and description"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id} [patch]
func (ctrl *Controller) UpdateBuilderSection(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	sectionID, err := parseInt64Param(ctx, "section_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Section ID format"})
		return
	}

	var req dto.BuilderSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	session.UpdateSection(sectionID, req.Title, req.Description)
	ctx.JSON(http.StatusOK, session.Document())
}

// DeleteBuilderSection godoc
// @Summary Delete a section
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id} [delete]
func (ctrl *Controller) DeleteBuilderSection(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	sectionID, err := parseInt64Param(ctx, "section_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Section ID format"})
		return
	}
	session.DeleteSection(sectionID)
	ctx.JSON(http.StatusOK, session.Document())
}

// AddBuilderQuestion godoc
// @Summary Add a question to a section
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question body dto.Question true "Question to add"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions [post]
func (ctrl *Controller) AddBuilderQuestion(ctx *gin.Context) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return
	}
	sectionID, err := parseInt64Param(ctx, "section_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Section ID format"})
		return
	}

	var question dto.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	id := session.AddQuestion(sectionID, question)
	if id == 0 {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Section not found"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateBuilderQuestion godoc
// @Summary Replace a question
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Param question body dto.Question true "New question content"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id} [patch]
func (ctrl *Controller) UpdateBuilderQuestion(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}

	var question dto.Question
	if err := ctx.ShouldBindJSON(&question); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	session.UpdateQuestion(sectionID, questionID, question)
	ctx.JSON(http.StatusOK, session.Document())
}

// DeleteBuilderQuestion godoc
// @Summary Delete a question
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id} [delete]
func (ctrl *Controller) DeleteBuilderQuestion(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}
	session.DeleteQuestion(sectionID, questionID)
	ctx.JSON(http.StatusOK, session.Document())
}

// MoveBuilderQuestion godoc
// @Summary Move a question within its section
// @Description Shifts a question by the given offset. Moves past either end are ignored.
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Param move body dto.BuilderMoveRequest true "Offset, e.g. -1 or 1"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id}/move [post]
func (ctrl *Controller) MoveBuilderQuestion(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}

	var req dto.BuilderMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	session.MoveQuestion(sectionID, questionID, req.Offset)
	ctx.JSON(http.StatusOK, session.Document())
}

// AddBuilderOption godoc
// @Summary Add a choice option
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Param option body dto.BuilderOptionRequest true "Option value"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id}/options [post]
func (ctrl *Controller) AddBuilderOption(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}

	var req dto.BuilderOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	session.AddOption(sectionID, questionID, req.Value)
	ctx.JSON(http.StatusOK, session.Document())
}

// UpdateBuilderOption godoc
// @Summary Rename a choice option
// @Tags Builder
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Param option_index path int true "Option index (0-based)"
// @Param option body dto.BuilderOptionRequest true "New value"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id}/options/{option_index} [patch]
func (ctrl *Controller) UpdateBuilderOption(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}
	index, err := strconv.Atoi(ctx.Param("option_index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid option index"})
		return
	}

	var req dto.BuilderOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	session.UpdateOption(sectionID, questionID, index, req.Value)
	ctx.JSON(http.StatusOK, session.Document())
}

// DeleteBuilderOption godoc
// @Summary Delete a choice option
// @Tags Builder
// @Produce json
// @Param id path int true "Job ID"
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Param option_index path int true "Option index (0-based)"
// @Success 200 {object} dto.AssessmentDocument
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{id}/builder/sections/{section_id}/questions/{question_id}/options/{option_index} [delete]
func (ctrl *Controller) DeleteBuilderOption(ctx *gin.Context) {
	session, sectionID, questionID, ok := ctrl.builderQuestionTarget(ctx)
	if !ok {
		return
	}
	index, err := strconv.Atoi(ctx.Param("option_index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid option index"})
		return
	}
	session.DeleteOption(sectionID, questionID, index)
	ctx.JSON(http.StatusOK, session.Document())
}

// builderQuestionTarget resolves the session plus the section and question
// ids shared by the question-level handlers.
func (ctrl *Controller) builderQuestionTarget(ctx *gin.Context) (*service.BuilderSession, int64, int64, bool) {
	session, ok := ctrl.builderSession(ctx)
	if !ok {
		return nil, 0, 0, false
	}
	sectionID, err := parseInt64Param(ctx, "section_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Section ID format"})
		return nil, 0, 0, false
	}
	questionID, err := parseInt64Param(ctx, "question_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Question ID format"})
		return nil, 0, 0, false
	}
	return session, sectionID, questionID, true
}
