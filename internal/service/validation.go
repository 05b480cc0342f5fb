package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndthang/talentflow/internal/dto"
)

// ValidateQuestion checks one answer against a question's type and rules and
// returns the list of error messages (empty slice means valid). Pure.
func ValidateQuestion(q dto.Question, value any) []string {
	var errs []string

	if q.Validation.Required && isEmptyAnswer(value) {
		return []string{"This question is required"}
	}
	if isEmptyAnswer(value) {
		return errs
	}

	switch q.Type {
	case dto.QuestionNumeric:
		num, ok := toNumber(value)
		if !ok {
			errs = append(errs, "Please enter a valid number")
			break
		}
		if q.Validation.MinValue != nil && num < *q.Validation.MinValue {
			errs = append(errs, fmt.Sprintf("Value must be at least %s", formatNumber(*q.Validation.MinValue)))
		}
		if q.Validation.MaxValue != nil && num > *q.Validation.MaxValue {
			errs = append(errs, fmt.Sprintf("Value must be at most %s", formatNumber(*q.Validation.MaxValue)))
		}

	case dto.QuestionShortText, dto.QuestionLongText:
		text := stringify(value)
		length := len([]rune(text))
		if q.Validation.MinLength != nil && length < *q.Validation.MinLength {
			errs = append(errs, fmt.Sprintf("Minimum %d characters required", *q.Validation.MinLength))
		}
		if q.Validation.MaxLength != nil && length > *q.Validation.MaxLength {
			errs = append(errs, fmt.Sprintf("Maximum %d characters allowed", *q.Validation.MaxLength))
		}

	case dto.QuestionFileUpload:
		file, ok := toFileAnswer(value)
		if !ok {
			break
		}
		if q.Validation.AcceptedTypes != "" && !extensionAllowed(file.Name, q.Validation.AcceptedTypes) {
			errs = append(errs, fmt.Sprintf("File type not allowed. Accepted types: %s", q.Validation.AcceptedTypes))
		}
		if q.Validation.MaxSizeMB != nil && file.Size > *q.Validation.MaxSizeMB*1024*1024 {
			errs = append(errs, fmt.Sprintf("File size must be less than %sMB", formatNumber(*q.Validation.MaxSizeMB)))
		}

	case dto.QuestionSingleChoice:
		if !containsOption(q.Options, stringify(value)) {
			errs = append(errs, "Invalid selection")
		}

	case dto.QuestionMultiChoice, dto.QuestionMultiChoiceLegacy:
		items, ok := toSlice(value)
		if !ok {
			errs = append(errs, "Invalid selection format")
			break
		}
		for _, item := range items {
			if !containsOption(q.Options, stringify(item)) {
				errs = append(errs, "Invalid selection(s)")
				break
			}
		}
	}

	return errs
}

// ValidateSection validates every currently visible question in a section.
// Hidden questions are skipped entirely, required or not.
func ValidateSection(section dto.Section, responses dto.ResponseMap) dto.ValidationResult {
	result := dto.ValidationResult{Errors: map[string][]string{}}
	for _, q := range section.Questions {
		if !IsQuestionVisible(q, section.Questions, responses) {
			continue
		}
		if errs := ValidateQuestion(q, responses[dto.QuestionKey(q.ID)]); len(errs) > 0 {
			result.Errors[dto.QuestionKey(q.ID)] = errs
			result.TotalErrors += len(errs)
		}
	}
	return result
}

// ValidateAssessment validates all sections of a document.
func ValidateAssessment(doc dto.AssessmentDocument, responses dto.ResponseMap) dto.ValidationResult {
	result := dto.ValidationResult{Errors: map[string][]string{}}
	for _, section := range doc.Sections {
		sectionResult := ValidateSection(section, responses)
		for id, errs := range sectionResult.Errors {
			result.Errors[id] = errs
		}
		result.TotalErrors += sectionResult.TotalErrors
	}
	return result
}

func isEmptyAnswer(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	}
	return 0, false
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	}
	return nil, false
}

func toFileAnswer(value any) (dto.FileAnswer, bool) {
	switch v := value.(type) {
	case dto.FileAnswer:
		return v, true
	case map[string]any:
		file := dto.FileAnswer{}
		if name, ok := v["name"].(string); ok {
			file.Name = name
		}
		if size, ok := toNumber(v["size"]); ok {
			file.Size = size
		}
		return file, file.Name != ""
	}
	return dto.FileAnswer{}, false
}

func extensionAllowed(fileName, acceptedTypes string) bool {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(fileName[idx:])
	for _, accepted := range strings.Split(acceptedTypes, ",") {
		if strings.ToLower(strings.TrimSpace(accepted)) == ext {
			return true
		}
	}
	return false
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
