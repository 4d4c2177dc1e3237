package domain

const (
	ContentIdea      = "IDEA"
	ContentScheduled = "SCHEDULED"
	ContentPosted    = "POSTED"

	ActivityContentCreated = "Content created"
)

// ContentItem is a social post moving through a free-form workflow.
type ContentItem struct {
	ID            int64  `json:"id"`
	ClientID      int64  `json:"client_id" validate:"required_without=ID"`
	Platform      string `json:"platform" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Caption       string `json:"caption"`
	Hashtags      string `json:"hashtags"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
	PostedDate    string `json:"posted_date"`
	CTAHook       string `json:"cta_hook"`
	MediaPath     string `json:"media_path"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ContentActivity is an immutable log entry for a content item.
type ContentActivity struct {
	ID        int64  `json:"id"`
	ContentID int64  `json:"content_id"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// StatusChange returns the activity text recorded when an item moves to status.
func StatusChange(status string) string {
	return "Status changed to " + status
}

// Caption is a reusable caption from the client's library.
type Caption struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"client_id" validate:"required"`
	Platform  string `json:"platform"`
	Caption   string `json:"caption" validate:"required"`
	Tags      string `json:"tags"`
	CreatedAt string `json:"created_at,omitempty"`
}

// HashtagSet is a saved group of hashtags.
type HashtagSet struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"client_id" validate:"required"`
	Platform  string `json:"platform"`
	Hashtags  string `json:"hashtags" validate:"required"`
	CreatedAt string `json:"created_at,omitempty"`
}
