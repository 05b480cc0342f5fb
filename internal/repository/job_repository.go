package repository

import (
	"github.com/ndthang/talentflow/internal/model"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(job *model.Job) error
	Update(job *model.Job) error
	FindByID(id uint) (*model.Job, error)
	FindAll() ([]model.Job, error)
	FindByOrder(order int) (*model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *model.Job) error {
	return r.db.Create(job).Error
}

func (r *jobRepository) Update(job *model.Job) error {
	return r.db.Save(job).Error
}

func (r *jobRepository) FindByID(id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindAll() ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.Order("sort_order ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) FindByOrder(order int) (*model.Job, error) {
	var job model.Job
	if err := r.db.Where("sort_order = ?", order).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
