package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/model"
	"github.com/ndthang/talentflow/internal/repository"
	"github.com/rs/zerolog/log"
)

type JobService interface {
	List(query dto.JobListQuery) (*dto.PagedResponse[dto.JobResponse], error)
	Create(req dto.JobCreateRequest) (*dto.JobResponse, error)
	Patch(id uint, req dto.JobPatchRequest) (*dto.JobResponse, error)
	Reorder(id uint, req dto.JobReorderRequest) error
}

type jobService struct {
	jobRepo repository.JobRepository
}

func NewJobService(jobRepo repository.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) List(query dto.JobListQuery) (*dto.PagedResponse[dto.JobResponse], error) {
	jobs, err := s.jobRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching jobs: %w", err)
	}

	filtered := jobs[:0]
	search := strings.ToLower(query.Search)
	for _, job := range jobs {
		if search != "" && !strings.Contains(strings.ToLower(job.Title), search) {
			continue
		}
		if query.Status != "" && job.Status != query.Status {
			continue
		}
		filtered = append(filtered, job)
	}

	switch query.Sort {
	case "title":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Title < filtered[j].Title })
	case "status":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Status < filtered[j].Status })
	default:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Order < filtered[j].Order })
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	out := make([]dto.JobResponse, 0, end-start)
	for _, job := range filtered[start:end] {
		var resp dto.JobResponse
		if err := copier.Copy(&resp, &job); err != nil {
			return nil, fmt.Errorf("error preparing job response: %w", err)
		}
		out = append(out, resp)
	}

	return &dto.PagedResponse[dto.JobResponse]{Data: out, Total: len(filtered)}, nil
}

func (s *jobService) Create(req dto.JobCreateRequest) (*dto.JobResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validationf("job title is required")
	}

	job := model.Job{
		Title:  req.Title,
		Slug:   req.Slug,
		Status: req.Status,
		Tags:   req.Tags,
	}
	if job.Slug == "" {
		job.Slug = Slugify(req.Title)
	}
	if job.Status == "" {
		job.Status = "active"
	}
	if req.Order != nil {
		job.Order = *req.Order
	} else {
		// Fallback ordering: append after everything currently stored.
		jobs, err := s.jobRepo.FindAll()
		if err != nil {
			return nil, fmt.Errorf("error assigning job order: %w", err)
		}
		maxOrder := 0
		for _, j := range jobs {
			if j.Order > maxOrder {
				maxOrder = j.Order
			}
		}
		job.Order = maxOrder + 1
	}

	if err := s.jobRepo.Create(&job); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create job")
		return nil, fmt.Errorf("database error creating job: %w", err)
	}

	var resp dto.JobResponse
	if err := copier.Copy(&resp, &job); err != nil {
		return nil, fmt.Errorf("error preparing job response: %w", err)
	}
	return &resp, nil
}

func (s *jobService) Patch(id uint, req dto.JobPatchRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("job not found with ID %d: %w", id, err)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Slug != nil {
		job.Slug = *req.Slug
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}
	if req.Order != nil {
		job.Order = *req.Order
	}

	if err := s.jobRepo.Update(job); err != nil {
		log.Error().Err(err).Uint("jobID", id).Msg("Failed to update job")
		return nil, fmt.Errorf("database error updating job: %w", err)
	}

	var resp dto.JobResponse
	if err := copier.Copy(&resp, job); err != nil {
		return nil, fmt.Errorf("error preparing job response: %w", err)
	}
	return &resp, nil
}

// Reorder moves the job holding FromOrder to ToOrder.
func (s *jobService) Reorder(id uint, req dto.JobReorderRequest) error {
	job, err := s.jobRepo.FindByOrder(req.FromOrder)
	if err != nil {
		// Nothing at that position; matches the tolerant behaviour of the
		// kanban board, which treats a stale reorder as a no-op.
		log.Warn().Int("fromOrder", req.FromOrder).Uint("jobID", id).Msg("Reorder source position not found")
		return nil
	}
	job.Order = req.ToOrder
	if err := s.jobRepo.Update(job); err != nil {
		return fmt.Errorf("database error reordering job: %w", err)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify turns a title into a URL-safe slug.
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.Join(strings.Fields(slug), "-")
	return slugPattern.ReplaceAllString(slug, "")
}
