package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/finsage-core-poc/server/internal/loan/model"
	logx "github.com/finsage-core-poc/server/pkg/logger"
)

// basic safety limits to avoid pathological model outputs
const (
	maxContentLen = 64 * 1024 // 64KB
	maxFieldLen   = 512       // per extracted text field
)

// Result is the parsed output of one extraction attempt: the assistant's
// conversational reply, a sparse field-update map, and the extractor's own
// completeness verdict.
type Result struct {
	Message  string
	Fields   *model.ProfileUpdate
	Complete bool
}

// wireResult mirrors the JSON shape the extraction prompt requests.
type wireResult struct {
	Message         string               `json:"message"`
	ExtractedFields *model.ProfileUpdate `json:"extracted_fields"`
	Complete        bool                 `json:"is_data_collection_complete"`
}

// ParseExtractionResponse turns raw model output into a Result. Any content
// that cannot be parsed into the expected shape is an error; the caller
// treats it identically to a failed generation call.
func ParseExtractionResponse(content string) (res *Result, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "extraction_parser").Msgf("panic recovered: %v", r)
			res = nil
			err = fmt.Errorf("extraction parser panic")
		}
	}()

	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "extraction_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}

	body, ok := extractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var wire wireResult
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return nil, fmt.Errorf("unmarshal extraction response: %w", err)
	}

	msg := strings.TrimSpace(wire.Message)
	if msg == "" {
		return nil, fmt.Errorf("extraction response has empty message")
	}
	if !utf8.ValidString(msg) {
		return nil, fmt.Errorf("extraction message invalid utf8")
	}

	return &Result{
		Message:  msg,
		Fields:   sanitizeFields(wire.ExtractedFields),
		Complete: wire.Complete,
	}, nil
}

// extractJSONObject strips markdown fences and returns the outermost
// {...} span of the content.
func extractJSONObject(content string) (string, bool) {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// sanitizeFields drops values the profile must never accept: empty or
// oversized strings, non-positive amounts, negative incomes, and employment
// values outside the known enum.
func sanitizeFields(u *model.ProfileUpdate) *model.ProfileUpdate {
	if u == nil {
		return nil
	}
	u.Name = cleanText(u.Name)
	u.Purpose = cleanText(u.Purpose)
	u.City = cleanText(u.City)
	if u.RequestedAmount != nil && *u.RequestedAmount <= 0 {
		u.RequestedAmount = nil
	}
	if u.MonthlyIncome != nil && *u.MonthlyIncome < 0 {
		u.MonthlyIncome = nil
	}
	if u.EmploymentType != nil {
		et := model.ParseEmploymentType(string(*u.EmploymentType))
		if et == model.EmploymentUnset {
			u.EmploymentType = nil
		} else {
			u.EmploymentType = &et
		}
	}
	// identity flags are owned by the verification flow, never the extractor
	u.PANVerified = nil
	u.AadhaarVerified = nil
	if u.IsZero() {
		return nil
	}
	return u
}

func cleanText(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" || len(s) > maxFieldLen || !utf8.ValidString(s) {
		return nil
	}
	return &s
}
