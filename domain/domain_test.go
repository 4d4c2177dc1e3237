package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodBounds(t *testing.T) {
	from, to, ok := Period{Month: 12, Year: 2023}.Bounds()
	require.True(t, ok)
	assert.Equal(t, "2023-12-01", from)
	assert.Equal(t, "2024-01-01", to)

	from, to, ok = Period{Month: 2, Year: 2024}.Bounds()
	require.True(t, ok)
	assert.Equal(t, "2024-02-01", from)
	assert.Equal(t, "2024-03-01", to)

	_, _, ok = Period{Month: 13, Year: 2024}.Bounds()
	assert.False(t, ok)
	_, _, ok = Period{Year: 2024}.Bounds()
	assert.False(t, ok)
}

func TestRecalculateUsesExactArithmetic(t *testing.T) {
	inv := Invoice{Items: []InvoiceItem{
		{Quantity: decimal.RequireFromString("0.1"), UnitPrice: decimal.RequireFromString("0.2")},
		{Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("0.1")},
	}}
	inv.Recalculate()

	assert.Equal(t, "0.02", inv.Items[0].Amount.String())
	assert.Equal(t, "0.32", inv.TotalAmount.String())
	assert.Equal(t, InvoiceDraft, inv.Status)
}

func TestLeadForecast(t *testing.T) {
	lead := &Lead{ExpectedValue: decimal.RequireFromString("1000"), Probability: 35}
	assert.Equal(t, "350", lead.Forecast().String())
	assert.True(t, (*Lead)(nil).Forecast().IsZero())

	lead.Status = LeadStatusConverted
	assert.False(t, lead.IsOpen())
}

func TestValidateReportsFields(t *testing.T) {
	err := Validate(&Transaction{BusinessID: 1, Date: "2024-13-01", Amount: decimal.Zero, Type: "Transfer"})
	var dErr *Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, ErrCodeInvalid, dErr.Code)
	assert.Equal(t, map[string]string{
		"date":        "datetime",
		"description": "required",
		"amount":      "gt",
		"type":        "oneof",
	}, dErr.Fields)
	assert.Equal(t, "invalid fields: amount, date, description, type", dErr.Message)

	assert.NoError(t, Validate(&Client{BusinessID: 1, Name: "Acme"}))
	assert.NoError(t, Validate(&Client{ID: 4, Name: "Acme"}), "updates may omit the business")
}

func TestErrorClassification(t *testing.T) {
	wrapped := WrapError(ErrCodeConflict, "constraint violated", assert.AnError)
	assert.Equal(t, ErrCodeConflict, CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, ErrCodeInternal, CodeOf(assert.AnError))
	assert.True(t, IsDomainError(ErrClientNotFound, ErrCodeNotFound))
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(TaxLine{TaxCategory: "Rent or lease", Total: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tax_category":"Rent or lease","total":12.5}`, string(out))
}
