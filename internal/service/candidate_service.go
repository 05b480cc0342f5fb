package service

import (
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/ndthang/talentflow/internal/model"
	"github.com/ndthang/talentflow/internal/repository"
	"github.com/rs/zerolog/log"
)

// CandidateStages is the hiring pipeline, in order.
var CandidateStages = []string{"applied", "screen", "tech", "offer", "hired", "rejected"}

type CandidateService interface {
	List(query dto.CandidateListQuery) (*dto.PagedResponse[dto.CandidateResponseDTO], error)
	Create(req dto.CandidateCreateRequest) (*dto.CandidateResponseDTO, error)
	Patch(id uint, req dto.CandidatePatchRequest) (*dto.CandidateResponseDTO, error)
}

type candidateService struct {
	candidateRepo repository.CandidateRepository
	jobRepo       repository.JobRepository
}

func NewCandidateService(candidateRepo repository.CandidateRepository, jobRepo repository.JobRepository) CandidateService {
	return &candidateService{candidateRepo: candidateRepo, jobRepo: jobRepo}
}

func (s *candidateService) List(query dto.CandidateListQuery) (*dto.PagedResponse[dto.CandidateResponseDTO], error) {
	candidates, err := s.candidateRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching candidates: %w", err)
	}

	filtered := candidates[:0]
	search := strings.ToLower(query.Search)
	for _, c := range candidates {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		if query.Stage != "" && c.Stage != query.Stage {
			continue
		}
		filtered = append(filtered, c)
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

	out := make([]dto.CandidateResponseDTO, 0, end-start)
	for _, c := range filtered[start:end] {
		var resp dto.CandidateResponseDTO
		if err := copier.Copy(&resp, &c); err != nil {
			return nil, fmt.Errorf("error preparing candidate response: %w", err)
		}
		out = append(out, resp)
	}

	return &dto.PagedResponse[dto.CandidateResponseDTO]{Data: out, Total: len(filtered)}, nil
}

func (s *candidateService) Create(req dto.CandidateCreateRequest) (*dto.CandidateResponseDTO, error) {
	if req.Stage != "" && !validStage(req.Stage) {
		return nil, apperr.Validationf("unknown candidate stage %q", req.Stage)
	}
	if _, err := s.jobRepo.FindByID(req.JobID); err != nil {
		return nil, apperr.Validationf("job %d does not exist", req.JobID)
	}

	candidate := model.Candidate{
		Name:  req.Name,
		Email: req.Email,
		Stage: req.Stage,
		JobID: req.JobID,
	}
	if candidate.Stage == "" {
		candidate.Stage = "applied"
	}

	if err := s.candidateRepo.Create(&candidate); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create candidate")
		return nil, fmt.Errorf("database error creating candidate: %w", err)
	}

	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, &candidate); err != nil {
		return nil, fmt.Errorf("error preparing candidate response: %w", err)
	}
	return &resp, nil
}

func (s *candidateService) Patch(id uint, req dto.CandidatePatchRequest) (*dto.CandidateResponseDTO, error) {
	candidate, err := s.candidateRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("candidate not found with ID %d: %w", id, err)
	}

	if req.Stage != nil {
		if !validStage(*req.Stage) {
			return nil, apperr.Validationf("unknown candidate stage %q", *req.Stage)
		}
		candidate.Stage = *req.Stage
	}
	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Email != nil {
		candidate.Email = *req.Email
	}
	if req.JobID != nil {
		candidate.JobID = *req.JobID
	}

	if err := s.candidateRepo.Update(candidate); err != nil {
		log.Error().Err(err).Uint("candidateID", id).Msg("Failed to update candidate")
		return nil, fmt.Errorf("database error updating candidate: %w", err)
	}

	var resp dto.CandidateResponseDTO
	if err := copier.Copy(&resp, candidate); err != nil {
		return nil, fmt.Errorf("error preparing candidate response: %w", err)
	}
	return &resp, nil
}

func validStage(stage string) bool {
	for _, s := range CandidateStages {
		if s == stage {
			return true
		}
	}
	return false
}
