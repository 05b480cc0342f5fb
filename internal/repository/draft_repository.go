package repository

import (
	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
)

type DraftRepository interface {
	Create(draft *model.AssessmentDraft) error
	Update(draft *model.AssessmentDraft) error
	FindByID(id uint) (*model.AssessmentDraft, error)
	FindByJobID(jobID uint) ([]model.AssessmentDraft, error)
	FindAll() ([]model.AssessmentDraft, error)
	Delete(id uint) error
}

type draftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(draft *model.AssessmentDraft) error {
	return r.db.Create(draft).Error
}

func (r *draftRepository) Update(draft *model.AssessmentDraft) error {
	return r.db.Save(draft).Error
}

func (r *draftRepository) FindByID(id uint) (*model.AssessmentDraft, error) {
	var draft model.AssessmentDraft
	if err := r.db.First(&draft, id).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *draftRepository) FindByJobID(jobID uint) ([]model.AssessmentDraft, error) {
	var drafts []model.AssessmentDraft
	if err := r.db.Where("job_id = ?", jobID).Order("last_modified DESC").Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepository) FindAll() ([]model.AssessmentDraft, error) {
	var drafts []model.AssessmentDraft
	if err := r.db.Order("last_modified DESC").Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepository) Delete(id uint) error {
	return r.db.Delete(&model.AssessmentDraft{}, id).Error
}
