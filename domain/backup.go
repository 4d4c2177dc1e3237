package domain

import "time"

const (
	BackupManual  = "backup"
	BackupAuto    = "auto"
	BackupRestore = "restore"

	BackupStatusOK     = "ok"
	BackupStatusFailed = "failed"
)

// BackupRecord is one entry in the backup/restore history.
type BackupRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
