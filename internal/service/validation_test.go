package service

import (
	"testing"

	"github.com/ndthang/talentflow/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestValidateQuestion_RequiredShortCircuits(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionNumeric,
		Validation: dto.Validation{
			Required: true,
			MinValue: floatPtr(0),
		},
	}

	errs := ValidateQuestion(q, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "This question is required", errs[0])

	errs = ValidateQuestion(q, "")
	require.Len(t, errs, 1)
	assert.Equal(t, "This question is required", errs[0])
}

func TestValidateQuestion_OptionalEmptyIsValid(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionNumeric,
		Validation: dto.Validation{
			MinValue: floatPtr(0),
			MaxValue: floatPtr(10),
		},
	}

	assert.Empty(t, ValidateQuestion(q, nil))
	assert.Empty(t, ValidateQuestion(q, ""))
}

func TestValidateQuestion_NumericRange(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionNumeric,
		Validation: dto.Validation{
			MinValue: floatPtr(0),
			MaxValue: floatPtr(10),
		},
	}

	errs := ValidateQuestion(q, "15")
	require.Len(t, errs, 1)
	assert.Equal(t, "Value must be at most 10", errs[0])

	errs = ValidateQuestion(q, "-3")
	require.Len(t, errs, 1)
	assert.Equal(t, "Value must be at least 0", errs[0])

	assert.Empty(t, ValidateQuestion(q, "5"))
	assert.Empty(t, ValidateQuestion(q, float64(7)))
}

func TestValidateQuestion_NumericNonNumber(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionNumeric,
		Validation: dto.Validation{
			MinValue: floatPtr(0),
			MaxValue: floatPtr(10),
		},
	}

	errs := ValidateQuestion(q, "abc")
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid number", errs[0])
}

func TestValidateQuestion_TextLength(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionShortText,
		Validation: dto.Validation{
			MinLength: intPtr(3),
			MaxLength: intPtr(5),
		},
	}

	errs := ValidateQuestion(q, "ab")
	require.Len(t, errs, 1)
	assert.Equal(t, "Minimum 3 characters required", errs[0])

	errs = ValidateQuestion(q, "too long")
	require.Len(t, errs, 1)
	assert.Equal(t, "Maximum 5 characters allowed", errs[0])

	assert.Empty(t, ValidateQuestion(q, "four"))
}

func TestValidateQuestion_FileUpload(t *testing.T) {
	q := dto.Question{
		ID:   1,
		Type: dto.QuestionFileUpload,
		Validation: dto.Validation{
			AcceptedTypes: ".pdf,.doc",
			MaxSizeMB:     floatPtr(2),
		},
	}

	errs := ValidateQuestion(q, dto.FileAnswer{Name: "resume.exe", Size: 1024})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "File type not allowed")

	errs = ValidateQuestion(q, dto.FileAnswer{Name: "resume.pdf", Size: 3 * 1024 * 1024})
	require.Len(t, errs, 1)
	assert.Equal(t, "File size must be less than 2MB", errs[0])

	assert.Empty(t, ValidateQuestion(q, dto.FileAnswer{Name: "resume.PDF", Size: 1024}))

	// Decoded JSON arrives as a map, not a FileAnswer.
	errs = ValidateQuestion(q, map[string]any{"name": "notes.txt", "size": float64(10)})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "File type not allowed")
}

func TestValidateQuestion_Choice(t *testing.T) {
	single := dto.Question{
		ID:      1,
		Type:    dto.QuestionSingleChoice,
		Options: []string{"Yes", "No"},
	}
	assert.Empty(t, ValidateQuestion(single, "Yes"))

	errs := ValidateQuestion(single, "Maybe")
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid selection", errs[0])

	multi := dto.Question{
		ID:      2,
		Type:    dto.QuestionMultiChoice,
		Options: []string{"Go", "Rust", "Zig"},
	}
	assert.Empty(t, ValidateQuestion(multi, []any{"Go", "Zig"}))

	errs = ValidateQuestion(multi, []any{"Go", "COBOL"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid selection(s)", errs[0])

	errs = ValidateQuestion(multi, "Go")
	require.Len(t, errs, 1)
	assert.Equal(t, "Invalid selection format", errs[0])
}

func TestValidateQuestion_ChoiceSpellings(t *testing.T) {
	// Both spellings of the multi-choice type take the option-membership
	// path; neither falls through unvalidated.
	for _, typ := range []string{dto.QuestionMultiChoice, dto.QuestionMultiChoiceLegacy} {
		q := dto.Question{ID: 1, Type: typ, Options: []string{"Go", "Rust"}}
		assert.Empty(t, ValidateQuestion(q, []any{"Go"}), typ)

		errs := ValidateQuestion(q, []any{"COBOL"})
		require.Len(t, errs, 1, typ)
		assert.Equal(t, "Invalid selection(s)", errs[0], typ)

		errs = ValidateQuestion(q, "COBOL")
		require.Len(t, errs, 1, typ)
		assert.Equal(t, "Invalid selection format", errs[0], typ)
	}
}

func TestValidateSection_SkipsHiddenQuestions(t *testing.T) {
	section := dto.Section{
		ID: 10,
		Questions: []dto.Question{
			{
				ID:      1,
				Type:    dto.QuestionSingleChoice,
				Options: []string{"Yes", "No"},
			},
			{
				ID:         2,
				Type:       dto.QuestionShortText,
				Validation: dto.Validation{Required: true},
				Conditional: &dto.Conditional{
					Enabled:   true,
					DependsOn: "1",
					Operator:  dto.OperatorEquals,
					Value:     "Yes",
				},
			},
		},
	}

	// Hidden required question contributes no errors.
	result := ValidateSection(section, dto.ResponseMap{"1": "No"})
	assert.Equal(t, 0, result.TotalErrors)

	// Once visible, the required rule applies.
	result = ValidateSection(section, dto.ResponseMap{"1": "Yes"})
	assert.Equal(t, 1, result.TotalErrors)
	assert.Equal(t, []string{"This question is required"}, result.Errors["2"])
}

func TestValidateAssessment_AggregatesAcrossSections(t *testing.T) {
	doc := dto.AssessmentDocument{
		ID:    100,
		JobID: 1,
		Title: "Screening",
		Sections: []dto.Section{
			{
				ID: 10,
				Questions: []dto.Question{
					{ID: 1, Type: dto.QuestionShortText, Validation: dto.Validation{Required: true}},
				},
			},
			{
				ID: 20,
				Questions: []dto.Question{
					{ID: 2, Type: dto.QuestionNumeric, Validation: dto.Validation{MaxValue: floatPtr(10)}},
				},
			},
		},
	}

	result := ValidateAssessment(doc, dto.ResponseMap{"2": "15"})
	assert.Equal(t, 2, result.TotalErrors)
	assert.Len(t, result.Errors["1"], 1)
	assert.Len(t, result.Errors["2"], 1)
}
