package domain

// Settings is the process-wide key/value configuration store.
type Settings map[string]string
