package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string          { return &s }
func intPtr(v int64) *int64            { return &v }
func etPtr(e EmploymentType) *EmploymentType { return &e }

func TestParseEmploymentType(t *testing.T) {
	cases := map[string]EmploymentType{
		"":               EmploymentUnset,
		"   ":            EmploymentUnset,
		"Salaried":       EmploymentSalaried,
		"I am salaried":  EmploymentSalaried,
		"self employed":  EmploymentSelfEmployed,
		"Self-Employed":  EmploymentSelfEmployed,
		"SELF EMPLOYED!": EmploymentSelfEmployed,
		"business owner": EmploymentSalaried,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseEmploymentType(in), "input %q", in)
	}
}

func TestProfileApplyIsMonotonic(t *testing.T) {
	p := ApplicantProfile{}

	p.Apply(&ProfileUpdate{Name: strPtr("Asha")})
	p.Apply(&ProfileUpdate{RequestedAmount: intPtr(300000)})
	p.Apply(&ProfileUpdate{City: strPtr("Pune")})

	assert.Equal(t, "Asha", p.Name, "absent fields must not clear earlier values")
	assert.Equal(t, int64(300000), p.RequestedAmount)
	assert.Equal(t, "Pune", p.City)

	// a newer value for the same key overwrites
	p.Apply(&ProfileUpdate{Name: strPtr("Asha Verma")})
	assert.Equal(t, "Asha Verma", p.Name)

	p.Apply(nil)
	assert.Equal(t, "Asha Verma", p.Name)
}

func TestProfileComplete(t *testing.T) {
	p := ApplicantProfile{
		Name:            "Asha",
		RequestedAmount: 300000,
		Purpose:         "wedding",
		MonthlyIncome:   60000,
		City:            "Pune",
	}
	assert.False(t, p.Complete(), "employment type still missing")

	p.EmploymentType = EmploymentSalaried
	assert.True(t, p.Complete())
	assert.True(t, p.Complete(), "verification flags are not part of completeness")
}

func TestProfileUpdateIsZero(t *testing.T) {
	var nilUpdate *ProfileUpdate
	assert.True(t, nilUpdate.IsZero())
	assert.True(t, (&ProfileUpdate{}).IsZero())
	assert.False(t, (&ProfileUpdate{Name: strPtr("Asha")}).IsZero())
}

func TestProfileUpdateMerge(t *testing.T) {
	a := &ProfileUpdate{Name: strPtr("Asha"), City: strPtr("Pune")}
	b := &ProfileUpdate{City: strPtr("Mumbai"), EmploymentType: etPtr(EmploymentSalaried)}

	out := a.Merge(b)
	require.NotNil(t, out)
	assert.Equal(t, "Asha", *out.Name)
	assert.Equal(t, "Mumbai", *out.City, "later update wins per key")
	assert.Equal(t, EmploymentSalaried, *out.EmploymentType)

	// the inputs are left untouched
	assert.Equal(t, "Pune", *a.City)

	assert.Same(t, b, (*ProfileUpdate)(nil).Merge(b))
	assert.Same(t, a, a.Merge(nil))
}
