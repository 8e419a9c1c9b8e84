package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

func TestFallbackAcquisitionOrder(t *testing.T) {
	var fb FallbackExtractor
	profile := model.ApplicantProfile{}

	steps := []struct {
		input      string
		wantPrompt string
	}{
		{"Asha", "Nice to meet you, Asha. How much loan amount are you looking for?"},
		{"300000", "Got it, ₹3,00,000. What is the purpose of this loan? (e.g., Home Renovation)"},
		{"wedding", "Understood. And what is your monthly income?"},
		{"60000", "Which city do you currently reside in?"},
		{"Pune", "Thanks! Lastly, are you Salaried or Self-Employed?"},
	}
	for _, step := range steps {
		update, prompt, complete := fb.Next(profile, step.input)
		require.NotNil(t, update, "input %q", step.input)
		assert.Equal(t, step.wantPrompt, prompt)
		assert.False(t, complete)
		profile.Apply(update)
	}

	update, prompt, complete := fb.Next(profile, "self employed")
	require.NotNil(t, update)
	assert.True(t, complete)
	assert.Contains(t, prompt, "partner network")
	profile.Apply(update)

	assert.Equal(t, model.ApplicantProfile{
		Name:            "Asha",
		RequestedAmount: 300000,
		Purpose:         "wedding",
		MonthlyIncome:   60000,
		City:            "Pune",
		EmploymentType:  model.EmploymentSelfEmployed,
	}, profile)
	assert.True(t, profile.Complete())
}

// Mid-acquisition calls carry no hidden state: the same (profile, text) pair
// always yields the identical single-field update and prompt.
func TestFallbackNextIsIdempotentMidAcquisition(t *testing.T) {
	var fb FallbackExtractor
	profile := model.ApplicantProfile{Name: "Asha"}

	u1, p1, c1 := fb.Next(profile, "around 300000 I think")
	u2, p2, c2 := fb.Next(profile, "around 300000 I think")

	assert.Equal(t, u1, u2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, c1, c2)
	assert.False(t, c1)

	// exactly the next missing field is filled
	require.NotNil(t, u1)
	require.NotNil(t, u1.RequestedAmount)
	assert.Equal(t, int64(300000), *u1.RequestedAmount)
	assert.Nil(t, u1.Name)
	assert.Nil(t, u1.Purpose)
}

func TestFallbackOnCompleteProfileIsIdempotent(t *testing.T) {
	var fb FallbackExtractor
	profile := model.ApplicantProfile{
		Name:            "Asha",
		RequestedAmount: 300000,
		Purpose:         "wedding",
		MonthlyIncome:   60000,
		City:            "Pune",
		EmploymentType:  model.EmploymentSalaried,
	}

	for i := 0; i < 3; i++ {
		update, prompt, complete := fb.Next(profile, "anything")
		assert.Nil(t, update)
		assert.True(t, complete)
		assert.Equal(t, "I have your details. Let me fetch the offers.", prompt)
	}
}

func TestFallbackNextPromptFollowsMissingField(t *testing.T) {
	var fb FallbackExtractor

	p := model.ApplicantProfile{}
	assert.Contains(t, fb.NextPrompt(p), "full name")

	p.Name = "Asha"
	assert.Contains(t, fb.NextPrompt(p), "loan amount")

	p.RequestedAmount = 300000
	assert.Contains(t, fb.NextPrompt(p), "purpose")

	p.Purpose = "wedding"
	assert.Contains(t, fb.NextPrompt(p), "monthly income")

	p.MonthlyIncome = 60000
	assert.Contains(t, fb.NextPrompt(p), "city")

	p.City = "Pune"
	assert.Contains(t, fb.NextPrompt(p), "Salaried or Self-Employed")
}

func TestParseRupees(t *testing.T) {
	cases := []struct {
		in       string
		fallback int64
		want     int64
	}{
		{"300000", 500000, 300000},
		{"around 3 lakh, say 300000", 500000, 3},
		{"₹2,50,000", 500000, 2},
		{"a lot", 500000, 500000},
		{"", 500000, 500000},
		{"0", 500000, 500000},
		{"-200", 500000, 200},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, parseRupees(c.in, c.fallback), "input %q", c.in)
	}
}

func TestFormatINR(t *testing.T) {
	cases := map[int64]string{
		999:      "999",
		1000:     "1,000",
		50000:    "50,000",
		500000:   "5,00,000",
		600000:   "6,00,000",
		1250000:  "12,50,000",
		10000000: "1,00,00,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatINR(in), "amount %d", in)
	}
}
