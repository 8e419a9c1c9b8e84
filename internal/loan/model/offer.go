package model

// LoanOffer is an immutable pre-approved offer presented to the applicant.
type LoanOffer struct {
	ID            string   `json:"id"`
	Provider      string   `json:"provider"`
	Amount        int64    `json:"amount"`
	InterestRate  float64  `json:"interest_rate"`
	TenureMonths  int      `json:"tenure_months"`
	EMI           int64    `json:"emi"`
	ProcessingFee int64    `json:"processing_fee"`
	Tags          []string `json:"tags"`
}
