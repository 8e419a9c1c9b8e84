// Package offers produces the pre-approved loan offer batch for an
// applicant profile.
package offers

import "github.com/finsage-core-poc/server/internal/loan/model"

// Generator returns the ordered offer batch for a profile. Idempotent: the
// same profile always yields the same batch in the same order.
type Generator interface {
	Generate(profile model.ApplicantProfile) []model.LoanOffer
}

// Catalog is the fixed partner-network catalog. The batch does not yet vary
// by requested amount or income; the Generator contract leaves room for
// that without an API change.
type Catalog struct{}

var catalog = []model.LoanOffer{
	{
		ID:            "offer_1",
		Provider:      "FinSage Prime",
		Amount:        500000,
		InterestRate:  10.5,
		TenureMonths:  36,
		EMI:           16264,
		ProcessingFee: 4999,
		Tags:          []string{"Best Value", "Instant Disbursal"},
	},
	{
		ID:            "offer_2",
		Provider:      "HDFC Bank",
		Amount:        500000,
		InterestRate:  11.2,
		TenureMonths:  48,
		EMI:           12985,
		ProcessingFee: 2500,
		Tags:          []string{"Low Processing Fee"},
	},
	{
		ID:            "offer_3",
		Provider:      "ICICI Bank",
		Amount:        600000,
		InterestRate:  10.9,
		TenureMonths:  60,
		EMI:           13000,
		ProcessingFee: 3000,
		Tags:          []string{"Higher Amount"},
	},
}

// Generate returns a fresh copy of the catalog so callers cannot mutate the
// shared batch.
func (Catalog) Generate(_ model.ApplicantProfile) []model.LoanOffer {
	out := make([]model.LoanOffer, len(catalog))
	for i, o := range catalog {
		tags := make([]string, len(o.Tags))
		copy(tags, o.Tags)
		o.Tags = tags
		out[i] = o
	}
	return out
}

var _ Generator = Catalog{}
