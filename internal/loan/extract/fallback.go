package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

// Defaults substituted when a numeric answer carries no digits. Stalling the
// pipeline on ill-formed input is worse than a wrong demo number.
const (
	DefaultLoanAmount    int64 = 500000
	DefaultMonthlyIncome int64 = 50000
)

// FallbackExtractor is the deterministic, rule-based field collector used
// whenever the external extraction call fails or returns unparsable output.
// It walks a fixed acquisition order: name, amount, purpose, monthly
// income, city, employment type. Pure and total; it never fails.
type FallbackExtractor struct{}

// Next consumes one user message, fills exactly the next missing profile
// field, and returns the update, the prompt for the subsequent field, and
// whether collection is now complete.
func (FallbackExtractor) Next(profile model.ApplicantProfile, userText string) (*model.ProfileUpdate, string, bool) {
	userText = strings.TrimSpace(userText)

	switch {
	case profile.Name == "":
		u := &model.ProfileUpdate{Name: &userText}
		return u, fmt.Sprintf("Nice to meet you, %s. How much loan amount are you looking for?", userText), false

	case profile.RequestedAmount == 0:
		amount := parseRupees(userText, DefaultLoanAmount)
		u := &model.ProfileUpdate{RequestedAmount: &amount}
		return u, fmt.Sprintf("Got it, ₹%s. What is the purpose of this loan? (e.g., Home Renovation)", formatINR(amount)), false

	case profile.Purpose == "":
		u := &model.ProfileUpdate{Purpose: &userText}
		return u, "Understood. And what is your monthly income?", false

	case profile.MonthlyIncome == 0:
		income := parseRupees(userText, DefaultMonthlyIncome)
		u := &model.ProfileUpdate{MonthlyIncome: &income}
		return u, "Which city do you currently reside in?", false

	case profile.City == "":
		u := &model.ProfileUpdate{City: &userText}
		return u, "Thanks! Lastly, are you Salaried or Self-Employed?", false

	case profile.EmploymentType == model.EmploymentUnset:
		et := model.ParseEmploymentType(userText)
		u := &model.ProfileUpdate{EmploymentType: &et}
		return u, "Perfect! I have all the details. Connecting to our partner network to find the best rates for you...", true

	default:
		return nil, "I have your details. Let me fetch the offers.", true
	}
}

// NextPrompt returns the question for the next missing field without
// consuming any input. Used when a stage opening must be produced with no
// user text.
func (FallbackExtractor) NextPrompt(profile model.ApplicantProfile) string {
	switch {
	case profile.Name == "":
		return "To begin, could you please tell me your full name?"
	case profile.RequestedAmount == 0:
		return "How much loan amount are you looking for?"
	case profile.Purpose == "":
		return "What is the purpose of this loan? (e.g., Home Renovation)"
	case profile.MonthlyIncome == 0:
		return "And what is your monthly income?"
	case profile.City == "":
		return "Which city do you currently reside in?"
	case profile.EmploymentType == model.EmploymentUnset:
		return "Are you Salaried or Self-Employed?"
	default:
		return "I have your details. Let me fetch the offers."
	}
}

// parseRupees extracts the first run of digits from the text; when the text
// carries no digits at all it substitutes the given default.
func parseRupees(text string, fallback int64) int64 {
	run := firstDigitRun(text)
	if run == "" {
		return fallback
	}
	v, err := strconv.ParseInt(run, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

// formatINR renders an amount with Indian digit grouping, e.g. 500000 →
// "5,00,000".
func formatINR(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
