package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

func TestParseExtractionResponsePlainJSON(t *testing.T) {
	res, err := ParseExtractionResponse(`{
		"message": "Nice to meet you, Asha!",
		"extracted_fields": {"name": "Asha", "amount": 300000},
		"is_data_collection_complete": false
	}`)
	require.NoError(t, err)

	assert.Equal(t, "Nice to meet you, Asha!", res.Message)
	assert.False(t, res.Complete)
	require.NotNil(t, res.Fields)
	require.NotNil(t, res.Fields.Name)
	assert.Equal(t, "Asha", *res.Fields.Name)
	require.NotNil(t, res.Fields.RequestedAmount)
	assert.Equal(t, int64(300000), *res.Fields.RequestedAmount)
}

func TestParseExtractionResponseFencedJSON(t *testing.T) {
	res, err := ParseExtractionResponse("Here you go:\n```json\n" +
		`{"message": "Got it!", "extracted_fields": {"city": "Pune"}, "is_data_collection_complete": false}` +
		"\n```")
	require.NoError(t, err)

	assert.Equal(t, "Got it!", res.Message)
	require.NotNil(t, res.Fields)
	require.NotNil(t, res.Fields.City)
	assert.Equal(t, "Pune", *res.Fields.City)
}

func TestParseExtractionResponseRejectsGarbage(t *testing.T) {
	for _, content := range []string{
		"",
		"sorry, I cannot answer in JSON",
		"{not json at all]",
		`{"extracted_fields": {"name": "Asha"}}`, // missing message
		`{"message": "   "}`,                     // blank message
	} {
		_, err := ParseExtractionResponse(content)
		assert.Error(t, err, "content %q", content)
	}
}

func TestParseExtractionResponseNormalisesEmployment(t *testing.T) {
	cases := map[string]model.EmploymentType{
		"Salaried":      model.EmploymentSalaried,
		"salaried":      model.EmploymentSalaried,
		"self employed": model.EmploymentSelfEmployed,
		"Self-Employed": model.EmploymentSelfEmployed,
	}
	for raw, want := range cases {
		res, err := ParseExtractionResponse(
			`{"message": "ok", "extracted_fields": {"employment_type": "` + raw + `"}, "is_data_collection_complete": false}`)
		require.NoError(t, err, "raw %q", raw)
		require.NotNil(t, res.Fields)
		require.NotNil(t, res.Fields.EmploymentType)
		assert.Equal(t, want, *res.Fields.EmploymentType, "raw %q", raw)
	}
}

func TestParseExtractionResponseSanitisesBadValues(t *testing.T) {
	res, err := ParseExtractionResponse(`{
		"message": "ok",
		"extracted_fields": {
			"name": "   ",
			"amount": -5,
			"monthly_income": -1,
			"pan_verified": true,
			"aadhaar_verified": true
		},
		"is_data_collection_complete": false
	}`)
	require.NoError(t, err)

	// every value is invalid or reserved, so the update collapses to nil
	assert.Nil(t, res.Fields)
}

func TestParseExtractionResponseDropsOversizedField(t *testing.T) {
	long := strings.Repeat("a", maxFieldLen+1)
	res, err := ParseExtractionResponse(
		`{"message": "ok", "extracted_fields": {"purpose": "` + long + `", "city": "Pune"}, "is_data_collection_complete": false}`)
	require.NoError(t, err)

	require.NotNil(t, res.Fields)
	assert.Nil(t, res.Fields.Purpose)
	require.NotNil(t, res.Fields.City)
	assert.Equal(t, "Pune", *res.Fields.City)
}

func TestParseExtractionResponseCompletionVerdict(t *testing.T) {
	res, err := ParseExtractionResponse(
		`{"message": "All done, let me fetch your offers!", "extracted_fields": {}, "is_data_collection_complete": true}`)
	require.NoError(t, err)

	assert.True(t, res.Complete)
	assert.Nil(t, res.Fields)
}
