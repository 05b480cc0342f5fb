package dto

// JobCreateRequest creates a new job posting.
type JobCreateRequest struct {
	Title  string   `json:"title" binding:"required"`
	Slug   string   `json:"slug"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
	Order  *int     `json:"order"`
}

// JobPatchRequest partially updates a job. Nil fields are left untouched.
type JobPatchRequest struct {
	Title  *string   `json:"title"`
	Slug   *string   `json:"slug"`
	Status *string   `json:"status"`
	Tags   *[]string `json:"tags"`
	Order  *int      `json:"order"`
}

// JobReorderRequest moves a job between kanban positions.
type JobReorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

// CandidateCreateRequest creates a candidate on a job.
type CandidateCreateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Stage string `json:"stage"`
	JobID uint   `json:"job_id" binding:"required"`
}

// CandidatePatchRequest partially updates a candidate.
type CandidatePatchRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Stage *string `json:"stage"`
	JobID *uint   `json:"job_id"`
}

// BuilderMetaRequest updates document-level builder fields. Nil fields are
// left untouched.
type BuilderMetaRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Settings    *Settings `json:"settings"`
}

// BuilderSectionRequest names or renames a section.
type BuilderSectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BuilderMoveRequest shifts a question within its section.
type BuilderMoveRequest struct {
	Offset int `json:"offset" binding:"required"`
}

// BuilderOptionRequest adds or renames a choice option.
type BuilderOptionRequest struct {
	Value string `json:"value"`
}

// ResponseSaveRequest upserts a candidate's answers for an assessment.
type ResponseSaveRequest struct {
	CandidateID uint        `json:"candidateId" binding:"required"`
	Responses   ResponseMap `json:"responses" binding:"required"`
	IsSubmitted bool        `json:"isSubmitted"`
}

// SubmissionRequest records an assessment submission against a job.
type SubmissionRequest struct {
	CandidateID  uint        `json:"candidateId" binding:"required"`
	AssessmentID int64       `json:"assessmentId"`
	Responses    ResponseMap `json:"responses"`
}
