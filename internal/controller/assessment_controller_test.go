package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDraftService struct {
	docs      []dto.AssessmentDocument
	summary   dto.DraftSummary
	saveErr   error
	published []dto.AssessmentDocument
	deleted   bool
}

func (s *stubDraftService) SaveDraft(jobID uint, doc dto.AssessmentDocument) (uint, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.summary = dto.DraftSummary{ID: 1, JobID: jobID, LastModified: time.Now(), Assessment: doc}
	return 1, nil
}

func (s *stubDraftService) Publish(jobID uint, doc dto.AssessmentDocument) (*dto.AssessmentDocument, error) {
	doc.JobID = jobID
	doc.IsDraft = false
	s.published = append(s.published, doc)
	return &doc, nil
}

func (s *stubDraftService) LoadDraftsByJob(jobID uint) ([]dto.DraftSummary, error) { return nil, nil }
func (s *stubDraftService) LoadAllDrafts() ([]dto.DraftSummary, error)            { return nil, nil }
func (s *stubDraftService) LoadDraft(draftID uint) (*dto.DraftSummary, error)     { return &s.summary, nil }
func (s *stubDraftService) DeleteDraft(draftID uint) bool                         { return true }

func (s *stubDraftService) DeleteDraftByLogicalID(jobID uint, logicalID int64) (bool, error) {
	return s.deleted, nil
}

func (s *stubDraftService) ListForJob(jobID uint) ([]dto.AssessmentDocument, error) {
	return s.docs, nil
}

func (s *stubDraftService) ListAll() ([]dto.AssessmentDocument, error) { return s.docs, nil }

type stubResponseService struct {
	record        *dto.ResponseRecord
	loadErr       error
	submitErr     error
	timeline      []dto.SubmissionResponse
	scheduleCalls int
	scheduledKey  string
}

func (s *stubResponseService) SaveResponses(assessmentID int64, candidateID uint, responses dto.ResponseMap, isSubmitted bool) (uint, error) {
	s.record = &dto.ResponseRecord{
		ID:           1,
		AssessmentID: assessmentID,
		CandidateID:  candidateID,
		Responses:    responses,
		IsSubmitted:  isSubmitted,
		LastModified: time.Now(),
	}
	return 1, nil
}

func (s *stubResponseService) ScheduleSave(assessmentID int64, candidateID uint, responses dto.ResponseMap) {
	s.scheduleCalls++
	s.scheduledKey = fmt.Sprintf("%d-%d", assessmentID, candidateID)
}

func (s *stubResponseService) LoadResponses(assessmentID int64, candidateID uint) (*dto.ResponseRecord, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.record, nil
}

func (s *stubResponseService) ListByAssessment(assessmentID int64) ([]dto.ResponseRecord, error) {
	return nil, nil
}

func (s *stubResponseService) Submit(jobID uint, req dto.SubmissionRequest) (*dto.SubmissionResponse, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &dto.SubmissionResponse{ID: 1, JobID: jobID, CandidateID: req.CandidateID, AssessmentID: req.AssessmentID, SubmittedAt: time.Now()}, nil
}

func (s *stubResponseService) Timeline(candidateID uint) ([]dto.SubmissionResponse, error) {
	return s.timeline, nil
}

func (s *stubResponseService) Close() {}

type stubJobService struct{}

func (s *stubJobService) List(query dto.JobListQuery) (*dto.PagedResponse[dto.JobResponse], error) {
	return &dto.PagedResponse[dto.JobResponse]{Data: []dto.JobResponse{}, Total: 0}, nil
}

func (s *stubJobService) Create(req dto.JobCreateRequest) (*dto.JobResponse, error) {
	return &dto.JobResponse{ID: 1, Title: req.Title}, nil
}

func (s *stubJobService) Patch(id uint, req dto.JobPatchRequest) (*dto.JobResponse, error) {
	return &dto.JobResponse{ID: id}, nil
}

func (s *stubJobService) Reorder(id uint, req dto.JobReorderRequest) error { return nil }

type stubCandidateService struct{}

func (s *stubCandidateService) List(query dto.CandidateListQuery) (*dto.PagedResponse[dto.CandidateResponseDTO], error) {
	return &dto.PagedResponse[dto.CandidateResponseDTO]{Data: []dto.CandidateResponseDTO{}, Total: 0}, nil
}

func (s *stubCandidateService) Create(req dto.CandidateCreateRequest) (*dto.CandidateResponseDTO, error) {
	return &dto.CandidateResponseDTO{ID: 1, Name: req.Name}, nil
}

func (s *stubCandidateService) Patch(id uint, req dto.CandidatePatchRequest) (*dto.CandidateResponseDTO, error) {
	return &dto.CandidateResponseDTO{ID: id}, nil
}

func newTestRouter(drafts *stubDraftService, responses *stubResponseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	builder := service.NewBuilderService(drafts, time.Hour)
	ctrl := NewController(drafts, responses, builder, &stubJobService{}, &stubCandidateService{})
	ctrl.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func publishableDocument() dto.AssessmentDocument {
	return dto.AssessmentDocument{
		ID:    1000,
		Title: "Backend Screening",
		Sections: []dto.Section{
			{ID: 1, Title: "Section 1", Questions: []dto.Question{
				{ID: 2, Type: dto.QuestionShortText, Text: "Name?"},
			}},
		},
	}
}

func TestGetAssessmentsForJob(t *testing.T) {
	drafts := &stubDraftService{docs: []dto.AssessmentDocument{{ID: 1000, JobID: 1}}}
	router := newTestRouter(drafts, &stubResponseService{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/assessments/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []dto.AssessmentDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, int64(1000), docs[0].ID)
}

func TestGetAssessmentsForJob_BadID(t *testing.T) {
	router := newTestRouter(&stubDraftService{}, &stubResponseService{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/assessments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveAssessmentDraft(t *testing.T) {
	drafts := &stubDraftService{}
	router := newTestRouter(drafts, &stubResponseService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1/draft", publishableDocument())
	require.Equal(t, http.StatusOK, w.Code)

	var summary dto.DraftSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, uint(1), summary.ID)
	assert.Equal(t, "Backend Screening", summary.Assessment.Title)
}

func TestSaveAssessmentDraft_ValidationErrorIs400(t *testing.T) {
	drafts := &stubDraftService{saveErr: apperr.Validationf("jobId is required for saving draft")}
	router := newTestRouter(drafts, &stubResponseService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1/draft", publishableDocument())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishAssessments(t *testing.T) {
	drafts := &stubDraftService{}
	router := newTestRouter(drafts, &stubResponseService{})

	w := doJSON(t, router, http.MethodPut, "/api/v1/assessments/1", []dto.AssessmentDocument{publishableDocument()})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, drafts.published, 1)
	assert.Equal(t, uint(1), drafts.published[0].JobID)
}

func TestPublishAssessments_UnpublishableIs400(t *testing.T) {
	drafts := &stubDraftService{}
	router := newTestRouter(drafts, &stubResponseService{})

	doc := publishableDocument()
	doc.Title = ""
	w := doJSON(t, router, http.MethodPut, "/api/v1/assessments/1", []dto.AssessmentDocument{doc})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, drafts.published)
}

func TestPublishAssessments_EmptyBodyIs400(t *testing.T) {
	router := newTestRouter(&stubDraftService{}, &stubResponseService{})

	w := doJSON(t, router, http.MethodPut, "/api/v1/assessments/1", []dto.AssessmentDocument{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteAssessmentDraft(t *testing.T) {
	drafts := &stubDraftService{deleted: true}
	router := newTestRouter(drafts, &stubResponseService{})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/assessments/1/draft/1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": true}`, w.Body.String())
}

func TestSubmitAssessment(t *testing.T) {
	router := newTestRouter(&stubDraftService{}, &stubResponseService{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1/submit", dto.SubmissionRequest{
		CandidateID:  5,
		AssessmentID: 1000,
		Responses:    dto.ResponseMap{"2": "Jordan"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var result dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, uint(5), result.CandidateID)
}

func TestSubmitAssessment_ValidationErrorIs400(t *testing.T) {
	responses := &stubResponseService{submitErr: apperr.Validationf("submission has 2 validation error(s)")}
	router := newTestRouter(&stubDraftService{}, responses)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1/submit", dto.SubmissionRequest{
		CandidateID:  5,
		AssessmentID: 1000,
		Responses:    dto.ResponseMap{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCandidateResponses_NotFoundIs404(t *testing.T) {
	responses := &stubResponseService{loadErr: apperr.ErrNotFound}
	router := newTestRouter(&stubDraftService{}, responses)

	w := doJSON(t, router, http.MethodGet, "/api/v1/assessments/1000/responses/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveCandidateResponses(t *testing.T) {
	responses := &stubResponseService{}
	router := newTestRouter(&stubDraftService{}, responses)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1000/responses", dto.ResponseSaveRequest{
		CandidateID: 5,
		Responses:   dto.ResponseMap{"2": "Jordan"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var record dto.ResponseRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, int64(1000), record.AssessmentID)
	assert.Equal(t, uint(5), record.CandidateID)
}

func TestScheduleCandidateResponses(t *testing.T) {
	responses := &stubResponseService{}
	router := newTestRouter(&stubDraftService{}, responses)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/1000/responses/autosave", dto.ResponseSaveRequest{
		CandidateID: 5,
		Responses:   dto.ResponseMap{"2": "Jordan"},
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, responses.scheduleCalls)
	assert.Equal(t, "1000-5", responses.scheduledKey)
}

func TestScheduleCandidateResponses_BadID(t *testing.T) {
	responses := &stubResponseService{}
	router := newTestRouter(&stubDraftService{}, responses)

	w := doJSON(t, router, http.MethodPost, "/api/v1/assessments/abc/responses/autosave", dto.ResponseSaveRequest{
		CandidateID: 5,
		Responses:   dto.ResponseMap{"2": "Jordan"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, responses.scheduleCalls)
}
