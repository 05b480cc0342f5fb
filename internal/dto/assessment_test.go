package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionalUnmarshal_OperatorKey(t *testing.T) {
	var c Conditional
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"dependsOn":"12","operator":"not_equals","value":"No"}`), &c))
	assert.True(t, c.Enabled)
	assert.Equal(t, "12", c.DependsOn)
	assert.Equal(t, OperatorNotEquals, c.Operator)
	assert.Equal(t, "No", c.Value)
}

func TestConditionalUnmarshal_LegacyConditionKey(t *testing.T) {
	var c Conditional
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"dependsOn":12,"condition":"equals","value":"Yes"}`), &c))
	assert.Equal(t, OperatorEquals, c.Operator)
	assert.Equal(t, "12", c.DependsOn)
}

func TestConditionalUnmarshal_OperatorWinsOverCondition(t *testing.T) {
	var c Conditional
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"dependsOn":"1","operator":"contains","condition":"equals","value":"x"}`), &c))
	assert.Equal(t, OperatorContains, c.Operator)
}

func TestConditionalUnmarshal_DependsOnForms(t *testing.T) {
	cases := map[string]string{
		`{"dependsOn": "42"}`:       "42",
		`{"dependsOn": 42}`:         "42",
		`{"dependsOn": null}`:       "",
		`{}`:                        "",
		`{"dependsOn": 1755550000}`: "1755550000",
	}
	for raw, want := range cases {
		var c Conditional
		require.NoError(t, json.Unmarshal([]byte(raw), &c), raw)
		assert.Equal(t, want, c.DependsOn, raw)
	}
}

func TestQuestionUnmarshal_NormalizesLegacyMultiChoice(t *testing.T) {
	var q Question
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"type":"multi-choice","text":"Stack?","options":["Go","Rust"]}`), &q))
	assert.Equal(t, QuestionMultiChoice, q.Type)

	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"type":"multiple-choice","text":"Stack?"}`), &q))
	assert.Equal(t, QuestionMultiChoice, q.Type)
}

func TestQuestionKey(t *testing.T) {
	assert.Equal(t, "1755550000123", QuestionKey(1755550000123))
}

func TestAssessmentDocumentRoundTrip(t *testing.T) {
	limit := 45
	doc := AssessmentDocument{
		ID:    1755550000123,
		JobID: 4,
		Title: "Platform Screening",
		Sections: []Section{
			{
				ID:    1,
				Title: "Background",
				Questions: []Question{
					{
						ID:      2,
						Type:    QuestionMultiChoice,
						Text:    "Which tools have you used?",
						Options: []string{"Docker", "Terraform"},
						Validation: Validation{
							Required: true,
						},
						Conditional: &Conditional{
							Enabled:   true,
							DependsOn: "1",
							Operator:  OperatorEquals,
							Value:     "Yes",
						},
					},
				},
			},
		},
		Settings: Settings{TimeLimit: &limit, ShowResults: true},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var got AssessmentDocument
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, doc.ID, got.ID)
	require.Len(t, got.Sections, 1)
	require.Len(t, got.Sections[0].Questions, 1)
	q := got.Sections[0].Questions[0]
	assert.Equal(t, doc.Sections[0].Questions[0].Options, q.Options)
	require.NotNil(t, q.Conditional)
	assert.Equal(t, OperatorEquals, q.Conditional.Operator)
	require.NotNil(t, got.Settings.TimeLimit)
	assert.Equal(t, 45, *got.Settings.TimeLimit)
}
