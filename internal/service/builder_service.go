package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ndthang/talentflow/internal/apperr"
	"github.com/ndthang/talentflow/internal/dto"
	"github.com/rs/zerolog/log"
)

// BuilderService manages editing sessions for the assessment builder, at
// most one per job.
type BuilderService interface {
	OpenSession(jobID uint, doc *dto.AssessmentDocument) *BuilderSession
	Session(jobID uint) (*BuilderSession, bool)
	CloseSession(jobID uint)
	CloseAll()
}

type builderService struct {
	draftService  DraftService
	autoSaveDelay time.Duration

	mu       sync.Mutex
	sessions map[uint]*BuilderSession
}

func NewBuilderService(draftService DraftService, autoSaveDelay time.Duration) BuilderService {
	return &builderService{
		draftService:  draftService,
		autoSaveDelay: autoSaveDelay,
		sessions:      make(map[uint]*BuilderSession),
	}
}

// OpenSession starts editing an assessment. With a nil doc a blank document
// is created with a fresh time-based logical id. An already-open session for
// the job is closed and replaced.
func (s *builderService) OpenSession(jobID uint, doc *dto.AssessmentDocument) *BuilderSession {
	session := &BuilderSession{
		jobID:         jobID,
		draftService:  s.draftService,
		saver:         NewAutoSaver(),
		autoSaveDelay: s.autoSaveDelay,
		now:           time.Now,
	}
	if doc != nil {
		session.doc = *doc
	} else {
		now := session.now()
		session.doc = dto.AssessmentDocument{
			ID:        now.UnixMilli(),
			JobID:     jobID,
			Sections:  []dto.Section{},
			Settings:  dto.Settings{ShowResults: true},
			CreatedAt: &now,
			UpdatedAt: &now,
		}
	}
	if session.doc.JobID == 0 {
		session.doc.JobID = jobID
	}
	session.lastID = session.doc.ID

	s.mu.Lock()
	if old, ok := s.sessions[jobID]; ok {
		old.Close()
	}
	s.sessions[jobID] = session
	s.mu.Unlock()

	return session
}

// Session returns the open session for a job, if any.
func (s *builderService) Session(jobID uint) (*BuilderSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[jobID]
	return session, ok
}

// CloseSession closes and discards a job's session. Closing a job with no
// open session is a no-op.
func (s *builderService) CloseSession(jobID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[jobID]; ok {
		session.Close()
		delete(s.sessions, jobID)
	}
}

// CloseAll flushes and closes every open session. Used on shutdown so
// pending edits reach the draft store before the process exits.
func (s *builderService) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for jobID, session := range s.sessions {
		if err := session.SaveNow(); err != nil {
			log.Error().Err(err).Uint("jobID", jobID).Msg("Failed to flush builder session on shutdown")
		}
		session.Close()
		delete(s.sessions, jobID)
	}
}

// BuilderSession holds one in-memory assessment document. Every structural
// edit rewrites the tree and schedules a debounced draft save; Close cancels
// anything still pending.
type BuilderSession struct {
	mu            sync.Mutex
	doc           dto.AssessmentDocument
	jobID         uint
	lastID        int64
	draftService  DraftService
	saver         *AutoSaver
	autoSaveDelay time.Duration
	now           func() time.Time
}

// Document returns a deep snapshot of the current document. The debounced
// save marshals the snapshot on the timer goroutine while edits keep mutating
// the live tree in place, so the two must share no backing arrays.
func (b *BuilderSession) Document() dto.AssessmentDocument {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Clone()
}

func (b *BuilderSession) saveKey() string {
	return fmt.Sprintf("assessment-%d", b.jobID)
}

// nextID generates a time-based id, nudged forward when two edits land in
// the same millisecond.
func (b *BuilderSession) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

// mutate applies an edit under the lock, stamps updatedAt, and schedules the
// debounced save. The save reads the document at fire time, so bursts of
// edits produce one write reflecting the final state.
func (b *BuilderSession) mutate(edit func(doc *dto.AssessmentDocument)) {
	b.mu.Lock()
	edit(&b.doc)
	updated := b.now()
	b.doc.UpdatedAt = &updated
	b.mu.Unlock()

	b.saver.Schedule(b.saveKey(), func() error {
		_, err := b.draftService.SaveDraft(b.jobID, b.Document())
		return err
	}, b.autoSaveDelay)
}

func (b *BuilderSession) SetTitle(title string) {
	b.mutate(func(doc *dto.AssessmentDocument) { doc.Title = title })
}

func (b *BuilderSession) SetDescription(description string) {
	b.mutate(func(doc *dto.AssessmentDocument) { doc.Description = description })
}

func (b *BuilderSession) SetSettings(settings dto.Settings) {
	b.mutate(func(doc *dto.AssessmentDocument) { doc.Settings = settings })
}

// AddSection appends an empty section and returns its id.
func (b *BuilderSession) AddSection() int64 {
	var id int64
	b.mutate(func(doc *dto.AssessmentDocument) {
		id = b.nextID()
		doc.Sections = append(doc.Sections, dto.Section{
			ID:        id,
			Title:     fmt.Sprintf("Section %d", len(doc.Sections)+1),
			Questions: []dto.Question{},
		})
	})
	return id
}

func (b *BuilderSession) UpdateSection(sectionID int64, title, description string) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID == sectionID {
				doc.Sections[i].Title = title
				doc.Sections[i].Description = description
				return
			}
		}
	})
}

func (b *BuilderSession) DeleteSection(sectionID int64) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		sections := doc.Sections[:0]
		for _, section := range doc.Sections {
			if section.ID != sectionID {
				sections = append(sections, section)
			}
		}
		doc.Sections = sections
	})
}

// AddQuestion appends a question to a section and returns the assigned id.
func (b *BuilderSession) AddQuestion(sectionID int64, question dto.Question) int64 {
	var id int64
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID == sectionID {
				id = b.nextID()
				question.ID = id
				doc.Sections[i].Questions = append(doc.Sections[i].Questions, question)
				return
			}
		}
	})
	return id
}

func (b *BuilderSession) UpdateQuestion(sectionID, questionID int64, updated dto.Question) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID != sectionID {
				continue
			}
			for j := range doc.Sections[i].Questions {
				if doc.Sections[i].Questions[j].ID == questionID {
					updated.ID = questionID
					doc.Sections[i].Questions[j] = updated
					return
				}
			}
		}
	})
}

func (b *BuilderSession) DeleteQuestion(sectionID, questionID int64) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID != sectionID {
				continue
			}
			questions := doc.Sections[i].Questions[:0]
			for _, q := range doc.Sections[i].Questions {
				if q.ID != questionID {
					questions = append(questions, q)
				}
			}
			doc.Sections[i].Questions = questions
			return
		}
	})
}

// MoveQuestion shifts a question up (-1) or down (+1) within its section.
// Moves past either end are ignored.
func (b *BuilderSession) MoveQuestion(sectionID, questionID int64, offset int) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID != sectionID {
				continue
			}
			questions := doc.Sections[i].Questions
			for j := range questions {
				if questions[j].ID == questionID {
					target := j + offset
					if target < 0 || target >= len(questions) {
						return
					}
					questions[j], questions[target] = questions[target], questions[j]
					return
				}
			}
		}
	})
}

func (b *BuilderSession) AddOption(sectionID, questionID int64, option string) {
	b.editQuestion(sectionID, questionID, func(q *dto.Question) {
		q.Options = append(q.Options, option)
	})
}

func (b *BuilderSession) UpdateOption(sectionID, questionID int64, optionIndex int, value string) {
	b.editQuestion(sectionID, questionID, func(q *dto.Question) {
		if optionIndex >= 0 && optionIndex < len(q.Options) {
			q.Options[optionIndex] = value
		}
	})
}

func (b *BuilderSession) DeleteOption(sectionID, questionID int64, optionIndex int) {
	b.editQuestion(sectionID, questionID, func(q *dto.Question) {
		if optionIndex >= 0 && optionIndex < len(q.Options) {
			q.Options = append(q.Options[:optionIndex], q.Options[optionIndex+1:]...)
		}
	})
}

func (b *BuilderSession) editQuestion(sectionID, questionID int64, edit func(q *dto.Question)) {
	b.mutate(func(doc *dto.AssessmentDocument) {
		for i := range doc.Sections {
			if doc.Sections[i].ID != sectionID {
				continue
			}
			for j := range doc.Sections[i].Questions {
				if doc.Sections[i].Questions[j].ID == questionID {
					edit(&doc.Sections[i].Questions[j])
					return
				}
			}
		}
	})
}

// SaveNow flushes any pending auto-save immediately. Unlike the debounced
// path, the error propagates.
func (b *BuilderSession) SaveNow() error {
	return b.saver.ForceSave(b.saveKey(), func() error {
		_, err := b.draftService.SaveDraft(b.jobID, b.Document())
		return err
	})
}

// PublishNow flushes pending edits, checks the document is publishable, and
// publishes it. The published copy replaces the in-memory document.
func (b *BuilderSession) PublishNow() (*dto.AssessmentDocument, error) {
	if err := b.SaveNow(); err != nil {
		return nil, err
	}

	doc := b.Document()
	if err := ValidatePublishable(doc); err != nil {
		return nil, err
	}

	published, err := b.draftService.Publish(b.jobID, doc)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.doc = *published
	b.mu.Unlock()

	log.Info().Int64("assessmentID", published.ID).Uint("jobID", b.jobID).Msg("Builder session published assessment")
	return published, nil
}

// Close cancels pending auto-saves. Call on teardown so no save fires after
// the owning state is gone.
func (b *BuilderSession) Close() {
	b.saver.Close()
}

// ValidatePublishable checks the minimum shape a document needs before it can
// be published: a title, at least one section, at least one question.
func ValidatePublishable(doc dto.AssessmentDocument) error {
	if strings.TrimSpace(doc.Title) == "" {
		return apperr.Validationf("assessment title is required")
	}
	if len(doc.Sections) == 0 {
		return apperr.Validationf("assessment must have at least one section")
	}
	for _, section := range doc.Sections {
		if len(section.Questions) > 0 {
			return nil
		}
	}
	return apperr.Validationf("assessment must have at least one question")
}
