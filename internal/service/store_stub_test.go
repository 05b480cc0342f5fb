package service

import (
	"sync"

	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
)

// In-memory stores standing in for the gorm repositories.

type stubDraftStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]model.AssessmentDraft
	creates int
	updates int
	failAll bool
}

func newStubDraftStore() *stubDraftStore {
	return &stubDraftStore{records: map[uint]model.AssessmentDraft{}}
}

func (s *stubDraftStore) Create(draft *model.AssessmentDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return gorm.ErrInvalidDB
	}
	s.nextID++
	draft.ID = s.nextID
	s.records[draft.ID] = *draft
	s.creates++
	return nil
}

func (s *stubDraftStore) Update(draft *model.AssessmentDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return gorm.ErrInvalidDB
	}
	s.records[draft.ID] = *draft
	s.updates++
	return nil
}

func (s *stubDraftStore) FindByID(id uint) (*model.AssessmentDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (s *stubDraftStore) FindByJobID(jobID uint) ([]model.AssessmentDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AssessmentDraft
	for _, record := range s.records {
		if record.JobID == jobID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *stubDraftStore) FindAll() ([]model.AssessmentDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AssessmentDraft
	for _, record := range s.records {
		out = append(out, record)
	}
	return out, nil
}

func (s *stubDraftStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *stubDraftStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *stubDraftStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates + s.updates
}

type stubAssessmentStore struct {
	mu      sync.Mutex
	records map[int64]model.Assessment
}

func newStubAssessmentStore() *stubAssessmentStore {
	return &stubAssessmentStore{records: map[int64]model.Assessment{}}
}

func (s *stubAssessmentStore) Upsert(assessment *model.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[assessment.ID] = *assessment
	return nil
}

func (s *stubAssessmentStore) FindByID(id int64) (*model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (s *stubAssessmentStore) FindByJobID(jobID uint) ([]model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Assessment
	for _, record := range s.records {
		if record.JobID == jobID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *stubAssessmentStore) FindAll() ([]model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Assessment
	for _, record := range s.records {
		out = append(out, record)
	}
	return out, nil
}

func (s *stubAssessmentStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

type stubResponseStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]model.CandidateResponse
	saves   int
}

func newStubResponseStore() *stubResponseStore {
	return &stubResponseStore{records: map[uint]model.CandidateResponse{}}
}

func (s *stubResponseStore) Save(response *model.CandidateResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if response.ID == 0 {
		s.nextID++
		response.ID = s.nextID
	}
	s.records[response.ID] = *response
	s.saves++
	return nil
}

func (s *stubResponseStore) FindByAssessmentAndCandidate(assessmentID int64, candidateID uint) (*model.CandidateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.AssessmentID == assessmentID && record.CandidateID == candidateID {
			r := record
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubResponseStore) FindByAssessment(assessmentID int64) ([]model.CandidateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CandidateResponse
	for _, record := range s.records {
		if record.AssessmentID == assessmentID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *stubResponseStore) Delete(assessmentID int64, candidateID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.AssessmentID == assessmentID && record.CandidateID == candidateID {
			delete(s.records, id)
		}
	}
	return nil
}

func (s *stubResponseStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type stubSubmissionStore struct {
	mu      sync.Mutex
	nextID  uint
	records []model.Submission
}

func newStubSubmissionStore() *stubSubmissionStore {
	return &stubSubmissionStore{}
}

func (s *stubSubmissionStore) Create(submission *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	submission.ID = s.nextID
	s.records = append(s.records, *submission)
	return nil
}

func (s *stubSubmissionStore) FindByCandidateID(candidateID uint) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for _, record := range s.records {
		if record.CandidateID == candidateID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *stubSubmissionStore) FindByJobID(jobID uint) ([]model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Submission
	for _, record := range s.records {
		if record.JobID == jobID {
			out = append(out, record)
		}
	}
	return out, nil
}

type stubJobStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]model.Job
}

func newStubJobStore() *stubJobStore {
	return &stubJobStore{records: map[uint]model.Job{}}
}

func (s *stubJobStore) Create(job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	job.ID = s.nextID
	s.records[job.ID] = *job
	return nil
}

func (s *stubJobStore) Update(job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[job.ID] = *job
	return nil
}

func (s *stubJobStore) FindByID(id uint) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (s *stubJobStore) FindAll() ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Job
	for _, record := range s.records {
		out = append(out, record)
	}
	return out, nil
}

func (s *stubJobStore) FindByOrder(order int) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if record.Order == order {
			r := record
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCandidateStore struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]model.Candidate
}

func newStubCandidateStore() *stubCandidateStore {
	return &stubCandidateStore{records: map[uint]model.Candidate{}}
}

func (s *stubCandidateStore) Create(candidate *model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	candidate.ID = s.nextID
	s.records[candidate.ID] = *candidate
	return nil
}

func (s *stubCandidateStore) Update(candidate *model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[candidate.ID] = *candidate
	return nil
}

func (s *stubCandidateStore) FindByID(id uint) (*model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (s *stubCandidateStore) FindAll() ([]model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Candidate
	for _, record := range s.records {
		out = append(out, record)
	}
	return out, nil
}
