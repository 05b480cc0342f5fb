package repository

import (
	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindByCandidateID(candidateID uint) ([]model.Submission, error)
	FindByJobID(jobID uint) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByCandidateID(candidateID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Where("candidate_id = ?", candidateID).Order("submitted_at ASC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) FindByJobID(jobID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.Where("job_id = ?", jobID).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
