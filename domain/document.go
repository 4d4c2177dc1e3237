package domain

// ComplianceWindowDays is how far ahead expiring documents raise an alert.
const ComplianceWindowDays = 30

// Document is a corporate document, optionally carrying an expiry date.
type Document struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"business_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Notes      string `json:"notes"`
	ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// ClientDocument is a file reference attached to a client.
type ClientDocument struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"client_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at,omitempty"`
}
