package domain

import "github.com/shopspring/decimal"

const (
	InvoiceDraft = "Draft"
	InvoiceSent  = "Sent"
	InvoicePaid  = "Paid"
	InvoiceVoid  = "Void"
)

// Invoice is an invoice header together with its line items.
type Invoice struct {
	ID            int64           `json:"id"`
	BusinessID    int64           `json:"business_id" validate:"required"`
	ClientID      int64           `json:"client_id" validate:"required"`
	ClientName    string          `json:"client_name,omitempty"`
	InvoiceNumber string          `json:"invoice_number" validate:"required,max=64"`
	Date          string          `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate       string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string          `json:"status" validate:"omitempty,oneof=Draft Sent Paid Void"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes"`
	CreatedAt     string          `json:"created_at,omitempty"`
	Items         []InvoiceItem   `json:"items,omitempty" validate:"required,min=1,dive"`
}

// InvoiceItem is one billed line. Amount is stored denormalized.
type InvoiceItem struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Amount      decimal.Decimal `json:"amount"`
}

// Recalculate derives every line amount and the invoice total from quantities and unit
// prices, discarding whatever totals the caller supplied.
func (inv *Invoice) Recalculate() {
	total := decimal.Zero
	for i := range inv.Items {
		item := &inv.Items[i]
		item.Amount = item.Quantity.Mul(item.UnitPrice)
		total = total.Add(item.Amount)
	}
	inv.TotalAmount = total
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
}

// IsPaid reports whether the invoice has been settled.
func (inv *Invoice) IsPaid() bool {
	return inv != nil && inv.Status == InvoicePaid
}

// InvoiceDetails is the item listing of a single invoice.
type InvoiceDetails struct {
	InvoiceID int64         `json:"invoiceId"`
	Items     []InvoiceItem `json:"items"`
}
