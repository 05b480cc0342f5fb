package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Question types supported by the builder and the candidate form.
const (
	QuestionSingleChoice = "single-choice"
	QuestionMultiChoice  = "multiple-choice"
	QuestionShortText    = "short-text"
	QuestionLongText     = "long-text"
	QuestionNumeric      = "numeric"
	QuestionFileUpload   = "file-upload"

	// QuestionMultiChoiceLegacy is the spelling older documents carry.
	// Decoding normalizes it to QuestionMultiChoice.
	QuestionMultiChoiceLegacy = "multi-choice"
)

// Conditional operators.
const (
	OperatorEquals    = "equals"
	OperatorNotEquals = "not_equals"
	OperatorContains  = "contains"
)

// AssessmentDocument is the editable assessment as the builder sees it.
// ID is the client-generated logical id, stable across draft and published
// copies; it is distinct from any storage row id.
type AssessmentDocument struct {
	ID          int64      `json:"id"`
	JobID       uint       `json:"jobId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Sections    []Section  `json:"sections"`
	Settings    Settings   `json:"settings"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsDraft     bool       `json:"isDraft,omitempty"`
}

// Clone returns a deep copy sharing no mutable state with the receiver.
// Callers that hand a document to another goroutine must clone it first.
func (d AssessmentDocument) Clone() AssessmentDocument {
	out := d
	out.CreatedAt = clonePtr(d.CreatedAt)
	out.UpdatedAt = clonePtr(d.UpdatedAt)
	out.Settings.TimeLimit = clonePtr(d.Settings.TimeLimit)
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, section := range d.Sections {
			out.Sections[i] = section.clone()
		}
	}
	return out
}

func (s Section) clone() Section {
	out := s
	if s.Questions != nil {
		out.Questions = make([]Question, len(s.Questions))
		for i, q := range s.Questions {
			out.Questions[i] = q.clone()
		}
	}
	return out
}

func (q Question) clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	out.Validation.MinLength = clonePtr(q.Validation.MinLength)
	out.Validation.MaxLength = clonePtr(q.Validation.MaxLength)
	out.Validation.MinValue = clonePtr(q.Validation.MinValue)
	out.Validation.MaxValue = clonePtr(q.Validation.MaxValue)
	out.Validation.MaxSizeMB = clonePtr(q.Validation.MaxSizeMB)
	if q.Conditional != nil {
		cond := *q.Conditional
		out.Conditional = &cond
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type Settings struct {
	TimeLimit          *int `json:"timeLimit"`
	RandomizeQuestions bool `json:"randomizeQuestions"`
	ShowResults        bool `json:"showResults"`
}

type Section struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID          int64        `json:"id"`
	Type        string       `json:"type"`
	Text        string       `json:"text"`
	Options     []string     `json:"options,omitempty"`
	Validation  Validation   `json:"validation"`
	Conditional *Conditional `json:"conditional,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*q = Question(a)
	if q.Type == QuestionMultiChoiceLegacy {
		q.Type = QuestionMultiChoice
	}
	return nil
}

type Validation struct {
	Required      bool     `json:"required"`
	MinLength     *int     `json:"minLength,omitempty"`
	MaxLength     *int     `json:"maxLength,omitempty"`
	MinValue      *float64 `json:"minValue,omitempty"`
	MaxValue      *float64 `json:"maxValue,omitempty"`
	AcceptedTypes string   `json:"acceptedTypes,omitempty"` // comma-separated extensions, e.g. ".pdf,.doc"
	MaxSizeMB     *float64 `json:"maxSize,omitempty"`
}

// Conditional controls question visibility based on an earlier answer in the
// same section. Documents written by the old builder store the operator under
// "condition"; decoding accepts both spellings and Operator holds the result.
type Conditional struct {
	Enabled   bool   `json:"enabled"`
	DependsOn string `json:"dependsOn,omitempty"`
	Operator  string `json:"operator,omitempty"`
	Value     string `json:"value,omitempty"`
}

func (c *Conditional) UnmarshalJSON(data []byte) error {
	var raw struct {
		Enabled   bool            `json:"enabled"`
		DependsOn json.RawMessage `json:"dependsOn"`
		Operator  string          `json:"operator"`
		Condition string          `json:"condition"`
		Value     string          `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Enabled = raw.Enabled
	c.DependsOn = flexIDString(raw.DependsOn)
	c.Operator = raw.Operator
	if c.Operator == "" {
		c.Operator = raw.Condition
	}
	c.Value = raw.Value
	return nil
}

// flexIDString accepts a question id encoded as either a JSON number or a
// string and normalizes it to its string form.
func flexIDString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// ResponseMap maps a question id (string form) to its answer value: a string,
// a []any of strings for multi-choice, or a file descriptor object.
type ResponseMap map[string]any

// FileAnswer is the decoded shape of a file-upload answer.
type FileAnswer struct {
	Name string  `json:"name"`
	Size float64 `json:"size"` // bytes
}

// QuestionKey returns the response-map key for a question id.
func QuestionKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
