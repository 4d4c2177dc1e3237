package domain

// Business is the top-level scope every other entity hangs off.
type Business struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at,omitempty"`
}
