package repository

import (
	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Save(response *model.CandidateResponse) error
	FindByAssessmentAndCandidate(assessmentID int64, candidateID uint) (*model.CandidateResponse, error)
	FindByAssessment(assessmentID int64) ([]model.CandidateResponse, error)
	Delete(assessmentID int64, candidateID uint) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Save(response *model.CandidateResponse) error {
	return r.db.Save(response).Error
}

func (r *responseRepository) FindByAssessmentAndCandidate(assessmentID int64, candidateID uint) (*model.CandidateResponse, error) {
	var response model.CandidateResponse
	err := r.db.Where("assessment_id = ? AND candidate_id = ?", assessmentID, candidateID).First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByAssessment(assessmentID int64) ([]model.CandidateResponse, error) {
	var responses []model.CandidateResponse
	if err := r.db.Where("assessment_id = ?", assessmentID).Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) Delete(assessmentID int64, candidateID uint) error {
	return r.db.Where("assessment_id = ? AND candidate_id = ?", assessmentID, candidateID).
		Delete(&model.CandidateResponse{}).Error
}
