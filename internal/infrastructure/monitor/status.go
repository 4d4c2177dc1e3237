package monitor

import "time"

type Status struct {
	Database       bool      `json:"database"`
	Catalog        bool      `json:"catalog"`
	CatalogEntries int       `json:"catalog_entries"`
	LastCheck      time.Time `json:"last_check"`
}
