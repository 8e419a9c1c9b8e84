package model

import "strings"

// EmploymentType is the applicant's declared employment category.
type EmploymentType string

const (
	EmploymentUnset        EmploymentType = ""
	EmploymentSalaried     EmploymentType = "Salaried"
	EmploymentSelfEmployed EmploymentType = "Self-Employed"
)

// ParseEmploymentType normalises free-form model or user output into one of
// the known employment types. Anything mentioning "self" maps to
// Self-Employed, any other non-empty value to Salaried.
func ParseEmploymentType(v string) EmploymentType {
	v = strings.TrimSpace(v)
	if v == "" {
		return EmploymentUnset
	}
	if strings.Contains(strings.ToLower(v), "self") {
		return EmploymentSelfEmployed
	}
	return EmploymentSalaried
}

// ApplicantProfile accumulates the semantic fields collected during the
// Sales stage plus the identity-verification flags. Fields fill
// monotonically: once set they are never cleared, only overwritten by a
// newer extraction for the same key.
type ApplicantProfile struct {
	Name            string         `json:"name,omitempty"`
	RequestedAmount int64          `json:"amount,omitempty"`
	Purpose         string         `json:"purpose,omitempty"`
	MonthlyIncome   int64          `json:"monthly_income,omitempty"`
	City            string         `json:"city,omitempty"`
	EmploymentType  EmploymentType `json:"employment_type,omitempty"`
	PANVerified     bool           `json:"pan_verified,omitempty"`
	AadhaarVerified bool           `json:"aadhaar_verified,omitempty"`
}

// Complete reports whether all six Sales-stage fields are filled.
func (p ApplicantProfile) Complete() bool {
	return p.Name != "" &&
		p.RequestedAmount > 0 &&
		p.Purpose != "" &&
		p.MonthlyIncome > 0 &&
		p.City != "" &&
		p.EmploymentType != EmploymentUnset
}

// ProfileUpdate is a sparse, strongly-typed field-update map. Nil fields are
// absent; non-nil fields overwrite the profile value on Apply.
type ProfileUpdate struct {
	Name            *string         `json:"name,omitempty"`
	RequestedAmount *int64          `json:"amount,omitempty"`
	Purpose         *string         `json:"purpose,omitempty"`
	MonthlyIncome   *int64          `json:"monthly_income,omitempty"`
	City            *string         `json:"city,omitempty"`
	EmploymentType  *EmploymentType `json:"employment_type,omitempty"`
	PANVerified     *bool           `json:"pan_verified,omitempty"`
	AadhaarVerified *bool           `json:"aadhaar_verified,omitempty"`
}

// IsZero reports whether the update carries no fields.
func (u *ProfileUpdate) IsZero() bool {
	if u == nil {
		return true
	}
	return u.Name == nil && u.RequestedAmount == nil && u.Purpose == nil &&
		u.MonthlyIncome == nil && u.City == nil && u.EmploymentType == nil &&
		u.PANVerified == nil && u.AadhaarVerified == nil
}

// Apply merges the update into the profile. Absent fields leave the profile
// untouched, preserving the monotonic-fill invariant.
func (p *ApplicantProfile) Apply(u *ProfileUpdate) {
	if u == nil {
		return
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.RequestedAmount != nil {
		p.RequestedAmount = *u.RequestedAmount
	}
	if u.Purpose != nil {
		p.Purpose = *u.Purpose
	}
	if u.MonthlyIncome != nil {
		p.MonthlyIncome = *u.MonthlyIncome
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.EmploymentType != nil {
		p.EmploymentType = *u.EmploymentType
	}
	if u.PANVerified != nil {
		p.PANVerified = *u.PANVerified
	}
	if u.AadhaarVerified != nil {
		p.AadhaarVerified = *u.AadhaarVerified
	}
}

// Merge overlays b on top of a field-by-field and returns the result. Either
// argument may be nil.
func (u *ProfileUpdate) Merge(b *ProfileUpdate) *ProfileUpdate {
	if u == nil {
		return b
	}
	if b == nil {
		return u
	}
	out := *u
	if b.Name != nil {
		out.Name = b.Name
	}
	if b.RequestedAmount != nil {
		out.RequestedAmount = b.RequestedAmount
	}
	if b.Purpose != nil {
		out.Purpose = b.Purpose
	}
	if b.MonthlyIncome != nil {
		out.MonthlyIncome = b.MonthlyIncome
	}
	if b.City != nil {
		out.City = b.City
	}
	if b.EmploymentType != nil {
		out.EmploymentType = b.EmploymentType
	}
	if b.PANVerified != nil {
		out.PANVerified = b.PANVerified
	}
	if b.AadhaarVerified != nil {
		out.AadhaarVerified = b.AadhaarVerified
	}
	return &out
}
