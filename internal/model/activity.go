package model

import "time"

// ActivityEntry records one action a user performed. The activity log is
// append-only and read newest first.
type ActivityEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
