package service

import (
	"strconv"
	"strings"

	"github.com/ndthang/talentflow/internal/dto"
)

// IsQuestionVisible decides whether a question is shown given the answers so
// far. This is the single evaluator for both the builder preview and the
// candidate form.
//
// Rules: no conditional (or disabled, or no dependency) means visible; a
// dependency that cannot be resolved within the section means hidden; an
// unanswered dependency means hidden. Comparisons are numeric-aware: when
// both sides parse as numbers they compare numerically, otherwise as trimmed
// strings. Unknown operators fail open.
func IsQuestionVisible(q dto.Question, sectionQuestions []dto.Question, responses dto.ResponseMap) bool {
	cond := q.Conditional
	if cond == nil || !cond.Enabled || cond.DependsOn == "" {
		return true
	}

	if !dependencyExists(cond.DependsOn, sectionQuestions) {
		return false
	}

	answer, ok := responses[cond.DependsOn]
	if !ok || isEmptyAnswer(answer) {
		return false
	}

	switch cond.Operator {
	case dto.OperatorEquals:
		return answerEquals(answer, cond.Value)
	case dto.OperatorNotEquals:
		return !answerEquals(answer, cond.Value)
	case dto.OperatorContains:
		return answerContains(answer, cond.Value)
	default:
		return true
	}
}

// VisibleQuestions filters a section's questions down to the visible ones.
func VisibleQuestions(section dto.Section, responses dto.ResponseMap) []dto.Question {
	visible := make([]dto.Question, 0, len(section.Questions))
	for _, q := range section.Questions {
		if IsQuestionVisible(q, section.Questions, responses) {
			visible = append(visible, q)
		}
	}
	return visible
}

func dependencyExists(dependsOn string, questions []dto.Question) bool {
	for _, q := range questions {
		if idMatches(q.ID, dependsOn) {
			return true
		}
	}
	return false
}

// idMatches compares a question id against its string-or-number encoded form.
func idMatches(id int64, ref string) bool {
	if strconv.FormatInt(id, 10) == ref {
		return true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(ref), 64)
	return err == nil && n == float64(id)
}

func answerEquals(answer any, expected string) bool {
	if items, ok := toSlice(answer); ok {
		for _, item := range items {
			if valueEquals(stringify(item), expected) {
				return true
			}
		}
		return false
	}
	return valueEquals(stringify(answer), expected)
}

func valueEquals(actual, expected string) bool {
	actual = strings.TrimSpace(actual)
	expected = strings.TrimSpace(expected)

	actualNum, errA := strconv.ParseFloat(actual, 64)
	expectedNum, errB := strconv.ParseFloat(expected, 64)
	if errA == nil && errB == nil {
		return actualNum == expectedNum
	}
	return actual == expected
}

func answerContains(answer any, expected string) bool {
	needle := strings.ToLower(strings.TrimSpace(expected))
	if items, ok := toSlice(answer); ok {
		for _, item := range items {
			if strings.Contains(strings.ToLower(strings.TrimSpace(stringify(item))), needle) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(stringify(answer))), needle)
}
