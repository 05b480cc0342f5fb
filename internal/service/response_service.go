package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/model"
	"github.com/ndthang/talentflow/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResponseService stores candidate answers while an assessment is being
// taken: debounced saves for in-progress answers, a forced save plus a
// submission record on submit.
type ResponseService interface {
	SaveResponses(assessmentID int64, candidateID uint, responses dto.ResponseMap, isSubmitted bool) (uint, error)
	ScheduleSave(assessmentID int64, candidateID uint, responses dto.ResponseMap)
	LoadResponses(assessmentID int64, candidateID uint) (*dto.ResponseRecord, error)
	ListByAssessment(assessmentID int64) ([]dto.ResponseRecord, error)
	Submit(jobID uint, req dto.SubmissionRequest) (*dto.SubmissionResponse, error)
	Timeline(candidateID uint) ([]dto.SubmissionResponse, error)
	Close()
}

type responseService struct {
	responseRepo   repository.ResponseRepository
	submissionRepo repository.SubmissionRepository
	assessmentRepo repository.AssessmentRepository
	saver          *AutoSaver
	saveDelay      time.Duration
	now            func() time.Time
}

func NewResponseService(
	responseRepo repository.ResponseRepository,
	submissionRepo repository.SubmissionRepository,
	assessmentRepo repository.AssessmentRepository,
	saveDelay time.Duration,
) ResponseService {
	return &responseService{
		responseRepo:   responseRepo,
		submissionRepo: submissionRepo,
		assessmentRepo: assessmentRepo,
		saver:          NewAutoSaver(),
		saveDelay:      saveDelay,
		now:            time.Now,
	}
}

// SaveResponses upserts the response row for (assessmentID, candidateID).
// A record that was already submitted stays submitted.
func (s *responseService) SaveResponses(assessmentID int64, candidateID uint, responses dto.ResponseMap, isSubmitted bool) (uint, error) {
	if assessmentID == 0 || candidateID == 0 {
		return 0, apperr.Validationf("assessmentId and candidateId are required for saving responses")
	}

	data, err := json.Marshal(responses)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize responses: %w", err)
	}

	record := model.CandidateResponse{
		AssessmentID: assessmentID,
		CandidateID:  candidateID,
		Responses:    string(data),
		IsSubmitted:  isSubmitted,
		LastModified: s.now(),
	}

	existing, err := s.responseRepo.FindByAssessmentAndCandidate(assessmentID, candidateID)
	if err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.IsSubmitted = isSubmitted || existing.IsSubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up candidate responses: %w", err)
	}

	if err := s.responseRepo.Save(&record); err != nil {
		log.Error().Err(err).Int64("assessmentID", assessmentID).Uint("candidateID", candidateID).
			Msg("Failed to save candidate responses")
		return 0, fmt.Errorf("failed to save candidate responses: %w", err)
	}
	return record.ID, nil
}

// ScheduleSave debounces in-progress answer writes. Store failures on this
// path are logged and swallowed so typing is never interrupted.
func (s *responseService) ScheduleSave(assessmentID int64, candidateID uint, responses dto.ResponseMap) {
	key := fmt.Sprintf("responses-%d-%d", assessmentID, candidateID)
	s.saver.Schedule(key, func() error {
		_, err := s.SaveResponses(assessmentID, candidateID, responses, false)
		return err
	}, s.saveDelay)
}

func (s *responseService) LoadResponses(assessmentID int64, candidateID uint) (*dto.ResponseRecord, error) {
	record, err := s.responseRepo.FindByAssessmentAndCandidate(assessmentID, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load candidate responses: %w", err)
	}
	return s.toRecord(record)
}

func (s *responseService) ListByAssessment(assessmentID int64) ([]dto.ResponseRecord, error) {
	records, err := s.responseRepo.FindByAssessment(assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment responses: %w", err)
	}
	out := make([]dto.ResponseRecord, 0, len(records))
	for i := range records {
		rec, err := s.toRecord(&records[i])
		if err != nil {
			log.Warn().Err(err).Uint("responseID", records[i].ID).Msg("Skipping malformed response record")
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Submit validates the answers against the published document's visible
// questions, force-saves them as submitted, and writes the timeline record.
func (s *responseService) Submit(jobID uint, req dto.SubmissionRequest) (*dto.SubmissionResponse, error) {
	if req.CandidateID == 0 {
		return nil, apperr.Validationf("candidateId is required for submitting an assessment")
	}

	if req.AssessmentID != 0 {
		if published, err := s.assessmentRepo.FindByID(req.AssessmentID); err == nil {
			var doc dto.AssessmentDocument
			if err := json.Unmarshal([]byte(published.Data), &doc); err == nil {
				if result := ValidateAssessment(doc, req.Responses); result.TotalErrors > 0 {
					return nil, apperr.Validationf("submission has %d validation error(s)", result.TotalErrors)
				}
			} else {
				log.Warn().Err(err).Int64("assessmentID", req.AssessmentID).
					Msg("Published assessment not deserializable, skipping submission validation")
			}
		}

		key := fmt.Sprintf("responses-%d-%d", req.AssessmentID, req.CandidateID)
		err := s.saver.ForceSave(key, func() error {
			_, err := s.SaveResponses(req.AssessmentID, req.CandidateID, req.Responses, true)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(req.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize submission payload: %w", err)
	}
	submission := model.Submission{
		JobID:        jobID,
		CandidateID:  req.CandidateID,
		AssessmentID: req.AssessmentID,
		Payload:      string(payload),
		SubmittedAt:  s.now(),
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Uint("candidateID", req.CandidateID).Msg("Failed to create submission")
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &dto.SubmissionResponse{
		ID:           submission.ID,
		JobID:        submission.JobID,
		CandidateID:  submission.CandidateID,
		AssessmentID: submission.AssessmentID,
		SubmittedAt:  submission.SubmittedAt,
	}, nil
}

// Timeline lists a candidate's submissions, oldest first.
func (s *responseService) Timeline(candidateID uint) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissionRepo.FindByCandidateID(candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate timeline: %w", err)
	}
	out := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		out = append(out, dto.SubmissionResponse{
			ID:           sub.ID,
			JobID:        sub.JobID,
			CandidateID:  sub.CandidateID,
			AssessmentID: sub.AssessmentID,
			SubmittedAt:  sub.SubmittedAt,
		})
	}
	return out, nil
}

// Close cancels pending debounced saves.
func (s *responseService) Close() {
	s.saver.Close()
}

func (s *responseService) toRecord(record *model.CandidateResponse) (*dto.ResponseRecord, error) {
	var responses dto.ResponseMap
	if err := json.Unmarshal([]byte(record.Responses), &responses); err != nil {
		return nil, &apperr.SerializationError{RecordID: record.ID, Err: err}
	}
	return &dto.ResponseRecord{
		ID:           record.ID,
		AssessmentID: record.AssessmentID,
		CandidateID:  record.CandidateID,
		Responses:    responses,
		IsSubmitted:  record.IsSubmitted,
		LastModified: record.LastModified,
	}, nil
}
