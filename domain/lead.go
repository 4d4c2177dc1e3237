package domain

import "github.com/shopspring/decimal"

const (
	LeadStatusNew         = "New"
	LeadStatusContacted   = "Contacted"
	LeadStatusNurturing   = "Nurturing"
	LeadStatusQualified   = "Qualified"
	LeadStatusProposal    = "Proposal"
	LeadStatusNegotiation = "Negotiation"
	LeadStatusConverted   = "Converted"
	LeadStatusLost        = "Lost"
)

// HotLeadProbability is the probability above which a lead counts as a forecasted client
// regardless of its status.
const HotLeadProbability = 70

// Lead is a prospective client with a probability-weighted deal value.
type Lead struct {
	ID            int64           `json:"id"`
	BusinessID    int64           `json:"business_id" validate:"required_without=ID"`
	Name          string          `json:"name" validate:"required,max=200"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"max=64"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status" validate:"omitempty,oneof=New Contacted Nurturing Qualified Proposal Negotiation Converted Lost"`
	ExpectedValue decimal.Decimal `json:"expected_value" validate:"gte=0"`
	Probability   int             `json:"probability" validate:"gte=0,lte=100"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

// Forecast is the probability-weighted expected value of the lead.
func (l *Lead) Forecast() decimal.Decimal {
	if l == nil {
		return decimal.Zero
	}
	return Percent(l.ExpectedValue, l.Probability)
}

// IsOpen reports whether the lead still counts towards the pipeline.
func (l *Lead) IsOpen() bool {
	return l != nil && l.Status != LeadStatusConverted
}

// ApplyDefaults fills the values a freshly captured lead starts with.
func (l *Lead) ApplyDefaults() {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
}
