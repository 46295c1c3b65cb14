package model

import "time"

// KeyValue is one stored preference.
type KeyValue struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
