package offers

import "math"

// MonthlyInstallment computes the standard amortised EMI for a principal at
// an annual percentage rate over a tenure in months, rounded to the nearest
// rupee. A zero rate degrades to straight division of the principal.
func MonthlyInstallment(principal int64, annualRate float64, tenureMonths int) int64 {
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return int64(math.Round(float64(principal) / float64(tenureMonths)))
	}
	f := math.Pow(1+r, float64(tenureMonths))
	return int64(math.Round(float64(principal) * r * f / (f - 1)))
}
