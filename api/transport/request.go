package transport

import "github.com/fastygo/backoffice/domain"

// PeriodRequest selects a business and an optional month.
type PeriodRequest struct {
	BusinessID int64 `json:"businessId"`
	Month      int   `json:"month"`
	Year       int   `json:"year"`
}

func (r PeriodRequest) Period() domain.Period {
	return domain.Period{Month: r.Month, Year: r.Year}
}

type PathRequest struct {
	Path string `json:"path"`
}

type ExportRequest struct {
	PeriodRequest
	Path string `json:"path"`
}

type TaskQuery struct {
	BusinessID int64 `json:"businessId"`
	ClientID   int64 `json:"clientId"`
}

type HistoryRequest struct {
	Limit int `json:"limit"`
}

// Deleted acknowledges a delete operation.
type Deleted struct {
	ID int64 `json:"id"`
}
