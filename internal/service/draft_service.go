package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/model"
	"github.com/ndthang/talentflow/internal/repository"
	"github.com/rs/zerolog/log"
)

// DraftService reconciles draft and published assessment records that share a
// logical id. It guarantees at most one draft row per (job, logical id).
type DraftService interface {
	SaveDraft(jobID uint, doc dto.AssessmentDocument) (uint, error)
	Publish(jobID uint, doc dto.AssessmentDocument) (*dto.AssessmentDocument, error)
	LoadDraftsByJob(jobID uint) ([]dto.DraftSummary, error)
	LoadAllDrafts() ([]dto.DraftSummary, error)
	LoadDraft(draftID uint) (*dto.DraftSummary, error)
	DeleteDraft(draftID uint) bool
	DeleteDraftByLogicalID(jobID uint, logicalID int64) (bool, error)
	ListForJob(jobID uint) ([]dto.AssessmentDocument, error)
	ListAll() ([]dto.AssessmentDocument, error)
}

type draftKey struct {
	JobID     uint
	LogicalID int64
}

type draftService struct {
	draftRepo      repository.DraftRepository
	assessmentRepo repository.AssessmentRepository

	// Secondary index (jobID, logicalID) -> draft storage id, so repeated
	// rapid saves upsert instead of racing a scan into duplicate rows.
	mu    sync.Mutex
	index map[draftKey]uint

	now func() time.Time
}

func NewDraftService(draftRepo repository.DraftRepository, assessmentRepo repository.AssessmentRepository) DraftService {
	return &draftService{
		draftRepo:      draftRepo,
		assessmentRepo: assessmentRepo,
		index:          make(map[draftKey]uint),
		now:            time.Now,
	}
}

// SaveDraft inserts or updates the draft row for (jobID, doc.ID). The job id
// may come from the argument or the document itself; with neither, this is a
// validation error rather than a silent default.
func (s *draftService) SaveDraft(jobID uint, doc dto.AssessmentDocument) (uint, error) {
	if jobID == 0 {
		jobID = doc.JobID
	}
	if jobID == 0 {
		return 0, apperr.Validationf("jobId is required for saving draft")
	}
	doc.JobID = jobID

	title := doc.Title
	if title == "" {
		title = "Untitled Assessment"
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize assessment: %w", err)
	}

	record := model.AssessmentDraft{
		JobID:        jobID,
		Title:        title,
		Data:         string(data),
		LastModified: s.now(),
	}

	if existing := s.findDraftRecord(jobID, doc.ID); existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		if err := s.draftRepo.Update(&record); err != nil {
			log.Error().Err(err).Uint("draftID", existing.ID).Msg("Failed to update assessment draft")
			return 0, fmt.Errorf("failed to save assessment draft: %w", err)
		}
	} else {
		if err := s.draftRepo.Create(&record); err != nil {
			log.Error().Err(err).Uint("jobID", jobID).Msg("Failed to create assessment draft")
			return 0, fmt.Errorf("failed to save assessment draft: %w", err)
		}
	}

	s.mu.Lock()
	s.index[draftKey{JobID: jobID, LogicalID: doc.ID}] = record.ID
	s.mu.Unlock()

	return record.ID, nil
}

// findDraftRecord resolves the draft row for (jobID, logicalID), first via
// the index, then by scanning and deserializing the job's drafts. A stale
// index entry is dropped; malformed rows are skipped.
func (s *draftService) findDraftRecord(jobID uint, logicalID int64) *model.AssessmentDraft {
	key := draftKey{JobID: jobID, LogicalID: logicalID}

	s.mu.Lock()
	storageID, ok := s.index[key]
	s.mu.Unlock()

	if ok {
		if record, err := s.draftRepo.FindByID(storageID); err == nil {
			return record
		}
		s.mu.Lock()
		delete(s.index, key)
		s.mu.Unlock()
	}

	records, err := s.draftRepo.FindByJobID(jobID)
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Msg("Failed to scan drafts for job")
		return nil
	}
	for i := range records {
		doc, err := s.decodeDocument(records[i].Data, records[i].ID)
		if err != nil {
			log.Warn().Err(err).Uint("draftID", records[i].ID).Msg("Skipping malformed draft record")
			continue
		}
		if doc.ID == logicalID {
			s.mu.Lock()
			s.index[key] = records[i].ID
			s.mu.Unlock()
			return &records[i]
		}
	}
	return nil
}

// Publish writes (or overwrites) the published record keyed by the document's
// logical id, then deletes the matching draft if one exists. Draft-only
// metadata is stripped before persisting.
func (s *draftService) Publish(jobID uint, doc dto.AssessmentDocument) (*dto.AssessmentDocument, error) {
	if jobID == 0 {
		jobID = doc.JobID
	}
	if jobID == 0 {
		return nil, apperr.Validationf("jobId is required for publishing")
	}

	now := s.now()
	if doc.ID == 0 {
		doc.ID = now.UnixMilli()
	}
	doc.JobID = jobID
	doc.IsDraft = false
	if doc.CreatedAt == nil {
		created := now
		doc.CreatedAt = &created
	}
	updated := now
	doc.UpdatedAt = &updated

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize assessment: %w", err)
	}

	record := model.Assessment{
		ID:        doc.ID,
		JobID:     jobID,
		Title:     doc.Title,
		Data:      string(data),
		CreatedAt: *doc.CreatedAt,
		UpdatedAt: updated,
	}
	if err := s.assessmentRepo.Upsert(&record); err != nil {
		log.Error().Err(err).Int64("assessmentID", doc.ID).Msg("Failed to publish assessment")
		return nil, fmt.Errorf("failed to publish assessment: %w", err)
	}

	if draft := s.findDraftRecord(jobID, doc.ID); draft != nil {
		if err := s.draftRepo.Delete(draft.ID); err != nil {
			// The published record is already written; a draft left behind is
			// recoverable, so log instead of failing the publish.
			log.Error().Err(err).Uint("draftID", draft.ID).Msg("Failed to delete draft after publish")
		} else {
			s.mu.Lock()
			delete(s.index, draftKey{JobID: jobID, LogicalID: doc.ID})
			s.mu.Unlock()
		}
	}

	log.Info().Int64("assessmentID", doc.ID).Uint("jobID", jobID).Msg("Assessment published")
	return &doc, nil
}

func (s *draftService) LoadDraftsByJob(jobID uint) ([]dto.DraftSummary, error) {
	records, err := s.draftRepo.FindByJobID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts for job %d: %w", jobID, err)
	}
	return s.summarize(records), nil
}

func (s *draftService) LoadAllDrafts() ([]dto.DraftSummary, error) {
	records, err := s.draftRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts: %w", err)
	}
	return s.summarize(records), nil
}

func (s *draftService) LoadDraft(draftID uint) (*dto.DraftSummary, error) {
	record, err := s.draftRepo.FindByID(draftID)
	if err != nil {
		return nil, fmt.Errorf("draft %d not found: %w", draftID, err)
	}
	doc, err := s.decodeDocument(record.Data, record.ID)
	if err != nil {
		return nil, err
	}
	summary := dto.DraftSummary{
		ID:           record.ID,
		JobID:        record.JobID,
		LastModified: record.LastModified,
		Assessment:   doc,
	}
	return &summary, nil
}

// DeleteDraft removes a draft row by storage id. Idempotent: deleting a
// missing draft still reports success.
func (s *draftService) DeleteDraft(draftID uint) bool {
	if err := s.draftRepo.Delete(draftID); err != nil {
		log.Error().Err(err).Uint("draftID", draftID).Msg("Failed to delete draft")
		return false
	}

	s.mu.Lock()
	for key, id := range s.index {
		if id == draftID {
			delete(s.index, key)
		}
	}
	s.mu.Unlock()
	return true
}

// DeleteDraftByLogicalID removes the draft matching a document's embedded id.
// Returns whether a matching draft existed.
func (s *draftService) DeleteDraftByLogicalID(jobID uint, logicalID int64) (bool, error) {
	draft := s.findDraftRecord(jobID, logicalID)
	if draft == nil {
		return false, nil
	}
	if err := s.draftRepo.Delete(draft.ID); err != nil {
		return false, fmt.Errorf("failed to delete draft %d: %w", draft.ID, err)
	}
	s.mu.Lock()
	delete(s.index, draftKey{JobID: jobID, LogicalID: logicalID})
	s.mu.Unlock()
	return true, nil
}

// ListForJob returns the published and draft documents for a job in one list,
// drafts tagged IsDraft.
func (s *draftService) ListForJob(jobID uint) ([]dto.AssessmentDocument, error) {
	published, err := s.assessmentRepo.FindByJobID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments for job %d: %w", jobID, err)
	}
	drafts, err := s.LoadDraftsByJob(jobID)
	if err != nil {
		return nil, err
	}
	return s.merge(published, drafts), nil
}

// ListAll returns every job's published and draft documents.
func (s *draftService) ListAll() ([]dto.AssessmentDocument, error) {
	published, err := s.assessmentRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	drafts, err := s.LoadAllDrafts()
	if err != nil {
		return nil, err
	}
	return s.merge(published, drafts), nil
}

func (s *draftService) merge(published []model.Assessment, drafts []dto.DraftSummary) []dto.AssessmentDocument {
	docs := make([]dto.AssessmentDocument, 0, len(published)+len(drafts))
	for _, record := range published {
		doc, err := s.decodeDocument(record.Data, uint(record.ID))
		if err != nil {
			log.Warn().Err(err).Int64("assessmentID", record.ID).Msg("Skipping malformed published assessment")
			continue
		}
		doc.IsDraft = false
		docs = append(docs, doc)
	}
	for _, summary := range drafts {
		doc := summary.Assessment
		doc.IsDraft = true
		docs = append(docs, doc)
	}
	return docs
}

func (s *draftService) summarize(records []model.AssessmentDraft) []dto.DraftSummary {
	summaries := make([]dto.DraftSummary, 0, len(records))
	for _, record := range records {
		doc, err := s.decodeDocument(record.Data, record.ID)
		if err != nil {
			log.Warn().Err(err).Uint("draftID", record.ID).Msg("Skipping malformed draft record")
			continue
		}
		summaries = append(summaries, dto.DraftSummary{
			ID:           record.ID,
			JobID:        record.JobID,
			LastModified: record.LastModified,
			Assessment:   doc,
		})
	}
	return summaries
}

func (s *draftService) decodeDocument(data string, recordID uint) (dto.AssessmentDocument, error) {
	var doc dto.AssessmentDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return dto.AssessmentDocument{}, &apperr.SerializationError{RecordID: recordID, Err: err}
	}
	return doc, nil
}
