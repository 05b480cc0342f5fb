package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/service"
	"gorm.io/gorm"
)

// Controller hosts all API handlers and owns route registration.
type Controller struct {
	draftSvc     service.DraftService
	responseSvc  service.ResponseService
	builderSvc   service.BuilderService
	jobSvc       service.JobService
	candidateSvc service.CandidateService
}

func NewController(
	draftSvc service.DraftService,
	responseSvc service.ResponseService,
	builderSvc service.BuilderService,
	jobSvc service.JobService,
	candidateSvc service.CandidateService,
) *Controller {
	return &Controller{
		draftSvc:     draftSvc,
		responseSvc:  responseSvc,
		builderSvc:   builderSvc,
		jobSvc:       jobSvc,
		candidateSvc: candidateSvc,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		// Assessment routes. The :id segment is the job id for builder-facing
		// routes and the assessment's logical id for the responses routes.
		assessments := apiV1.Group("/assessments")
		assessments.GET("", ctrl.GetAllAssessments)
		assessments.GET("/:id", ctrl.GetAssessmentsForJob)
		assessments.PUT("/:id", ctrl.PublishAssessments)
		assessments.POST("/:id/draft", ctrl.SaveAssessmentDraft)
		assessments.DELETE("/:id/draft/:assessment_id", ctrl.DeleteAssessmentDraft)
		assessments.POST("/:id/submit", ctrl.SubmitAssessment)
		assessments.POST("/:id/responses", ctrl.SaveCandidateResponses)
		assessments.POST("/:id/responses/autosave", ctrl.ScheduleCandidateResponses)
		assessments.GET("/:id/responses/:candidate_id", ctrl.GetCandidateResponses)

		// Builder routes. The session is keyed by job id.
		builder := assessments.Group("/:id/builder")
		builder.POST("", ctrl.OpenBuilderSession)
		builder.GET("", ctrl.GetBuilderDocument)
		builder.PATCH("", ctrl.UpdateBuilderMeta)
		builder.DELETE("", ctrl.CloseBuilderSession)
		builder.POST("/save", ctrl.SaveBuilderDraft)
		builder.POST("/publish", ctrl.PublishBuilderDocument)
		builder.POST("/sections", ctrl.AddBuilderSection)
		builder.PATCH("/sections/:section_id", ctrl.UpdateBuilderSection)
		builder.DELETE("/sections/:section_id", ctrl.DeleteBuilderSection)
		builder.POST("/sections/:section_id/questions", ctrl.AddBuilderQuestion)
		builder.PATCH("/sections/:section_id/questions/:question_id", ctrl.UpdateBuilderQuestion)
		builder.DELETE("/sections/:section_id/questions/:question_id", ctrl.DeleteBuilderQuestion)
		builder.POST("/sections/:section_id/questions/:question_id/move", ctrl.MoveBuilderQuestion)
		builder.POST("/sections/:section_id/questions/:question_id/options", ctrl.AddBuilderOption)
		builder.PATCH("/sections/:section_id/questions/:question_id/options/:option_index", ctrl.UpdateBuilderOption)
		builder.DELETE("/sections/:section_id/questions/:question_id/options/:option_index", ctrl.DeleteBuilderOption)

		// Job routes
		jobs := apiV1.Group("/jobs")
		jobs.GET("", ctrl.ListJobs)
		jobs.POST("", ctrl.CreateJob)
		jobs.PATCH("/:id", ctrl.PatchJob)
		jobs.PATCH("/:id/reorder", ctrl.ReorderJob)

		// Candidate routes
		candidates := apiV1.Group("/candidates")
		candidates.GET("", ctrl.ListCandidates)
		candidates.POST("", ctrl.CreateCandidate)
		candidates.PATCH("/:id", ctrl.PatchCandidate)
		candidates.GET("/:id/timeline", ctrl.GetCandidateTimeline)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

func parseInt64Param(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}
