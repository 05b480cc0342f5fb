package repository

import (
	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository interface {
	Upsert(assessment *model.Assessment) error
	FindByID(id int64) (*model.Assessment, error)
	FindByJobID(jobID uint) ([]model.Assessment, error)
	FindAll() ([]model.Assessment, error)
	Delete(id int64) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Upsert inserts or replaces by primary key. The key is the document's
// logical id, so republishing overwrites the previous row.
func (r *assessmentRepository) Upsert(assessment *model.Assessment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(assessment).Error
}

func (r *assessmentRepository) FindByID(id int64) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.First(&assessment, id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByJobID(jobID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	if err := r.db.Where("job_id = ?", jobID).Order("updated_at DESC").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) FindAll() ([]model.Assessment, error) {
	var assessments []model.Assessment
	if err := r.db.Order("updated_at DESC").Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Assessment{}, id).Error
}
