package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

func TestCatalogBatchShape(t *testing.T) {
	batch := Catalog{}.Generate(model.ApplicantProfile{})

	require.Len(t, batch, 3)
	assert.Equal(t, "offer_1", batch[0].ID)
	assert.Equal(t, "FinSage Prime", batch[0].Provider)
	assert.Equal(t, "offer_2", batch[1].ID)
	assert.Equal(t, "HDFC Bank", batch[1].Provider)
	assert.Equal(t, "offer_3", batch[2].ID)
	assert.Equal(t, "ICICI Bank", batch[2].Provider)

	assert.Equal(t, []string{"Best Value", "Instant Disbursal"}, batch[0].Tags)
	assert.Equal(t, int64(16264), batch[0].EMI)
	assert.Equal(t, 11.2, batch[1].InterestRate)
	assert.Equal(t, 60, batch[2].TenureMonths)
}

func TestCatalogIsIdempotent(t *testing.T) {
	gen := Catalog{}
	a := gen.Generate(model.ApplicantProfile{Name: "Asha", RequestedAmount: 300000})
	b := gen.Generate(model.ApplicantProfile{Name: "Ravi", RequestedAmount: 900000})

	assert.Equal(t, a, b, "batch must not depend on the profile yet")
}

func TestMonthlyInstallment(t *testing.T) {
	// zero rate degrades to straight division
	assert.Equal(t, int64(10000), MonthlyInstallment(360000, 0, 36))

	assert.Zero(t, MonthlyInstallment(0, 10.5, 36))
	assert.Zero(t, MonthlyInstallment(-1, 10.5, 36))
	assert.Zero(t, MonthlyInstallment(500000, 10.5, 0))

	// same principal and tenure, a higher rate costs more per month
	assert.Greater(t,
		MonthlyInstallment(500000, 12.0, 36),
		MonthlyInstallment(500000, 10.5, 36))

	// longer tenure lowers the installment
	assert.Less(t,
		MonthlyInstallment(500000, 10.5, 60),
		MonthlyInstallment(500000, 10.5, 36))
}

// The catalog EMIs are rounded partner-quoted figures; they must stay within
// a fraction of a percent of the amortisation formula (offer_3 quotes 13000
// against a computed ≈13017).
func TestCatalogEMIsMatchAmortisation(t *testing.T) {
	for _, o := range (Catalog{}).Generate(model.ApplicantProfile{}) {
		computed := MonthlyInstallment(o.Amount, o.InterestRate, o.TenureMonths)
		assert.InEpsilon(t, float64(o.EMI), float64(computed), 0.003,
			"offer %s: catalog EMI %d vs computed %d", o.ID, o.EMI, computed)
	}
}

func TestCatalogCallersCannotMutateSharedState(t *testing.T) {
	gen := Catalog{}
	a := gen.Generate(model.ApplicantProfile{})
	a[0].Provider = "mutated"
	a[0].Tags[0] = "mutated"

	b := gen.Generate(model.ApplicantProfile{})
	assert.Equal(t, "FinSage Prime", b[0].Provider)
	assert.Equal(t, "Best Value", b[0].Tags[0])
}
