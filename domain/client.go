package domain

const (
	ActivityClientCreated = "Client created"
	ActivityClientUpdated = "Client updated"
)

// Client is a customer of the business.
type Client struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"business_id" validate:"required_without=ID"`
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"max=64"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// ClientActivity is an immutable audit entry attached to a client.
type ClientActivity struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"client_id"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}
